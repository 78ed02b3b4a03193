package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/adapters"
	"rootpatch/internal/core"
	"rootpatch/internal/types"
)

// wirelessPatchName is the catalog entry whose presence in the durable
// manifest marks the offline wireless fix as committed.
const wirelessPatchName = "Legacy Wireless"

func (s Service) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	snapshotPath := strings.TrimSpace(req.SnapshotPath)
	if snapshotPath == "" {
		return DetectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("probe snapshot path is required")
	}

	snapshot, err := s.Snapshots.LoadSnapshot(snapshotPath)
	if err != nil {
		return DetectResult{}, err
	}
	if err := core.ValidateSnapshot(ctx, snapshot); err != nil {
		return DetectResult{}, err
	}
	if err := s.applyDurableState(&snapshot.Facts, req.StatePath); err != nil {
		return DetectResult{}, err
	}
	if _, _, err := s.applyKitState(&snapshot.Facts, req.KernelCollectionDir); err != nil {
		return DetectResult{}, err
	}

	flags, err := core.NewDetector().Detect(ctx, snapshot.Facts)
	if err != nil {
		return DetectResult{}, err
	}

	if outputDir := strings.TrimSpace(req.OutputDir); outputDir != "" {
		if err := adapters.NewOutputFileAdapter(outputDir).WriteCapabilities(flags); err != nil {
			return DetectResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Str("model", snapshot.Facts.Model).
		Bool("patchable", flags.Any()).
		Msg("detection completed")
	return DetectResult{Flags: flags}, nil
}

// applyDurableState folds the applied-patch record into the environment
// facts before detection runs.
func (s Service) applyDurableState(facts *types.HardwareFacts, statePath string) error {
	statePath = strings.TrimSpace(statePath)
	if statePath == "" {
		return nil
	}
	manifest, found, err := s.State.ReadManifest(statePath)
	if err != nil {
		return err
	}
	if found && manifest.Includes(wirelessPatchName) {
		facts.Environment.WirelessFixCommitted = true
	}
	return nil
}

// applyKitState marks the kernel collection installed when the local
// store holds a usable kit for the running release.
func (s Service) applyKitState(facts *types.HardwareFacts, dir string) (types.KernelCollectionKit, bool, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return types.KernelCollectionKit{}, false, nil
	}
	kit, found, err := adapters.NewKernelCollectionStoreAdapter(dir).Locate(facts.OSVersion, facts.OSBuild)
	if err != nil {
		return types.KernelCollectionKit{}, false, err
	}
	if found {
		facts.Environment.KernelCollectionInstalled = true
	}
	return kit, found, nil
}
