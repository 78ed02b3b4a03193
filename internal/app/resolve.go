package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/adapters"
	"rootpatch/internal/catalog"
	"rootpatch/internal/core"
	"rootpatch/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	snapshotPath := strings.TrimSpace(req.SnapshotPath)
	if snapshotPath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("probe snapshot path is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	snapshot, err := s.Snapshots.LoadSnapshot(snapshotPath)
	if err != nil {
		return ResolveResult{}, err
	}
	if err := core.ValidateSnapshot(ctx, snapshot); err != nil {
		return ResolveResult{}, err
	}
	if err := s.applyDurableState(&snapshot.Facts, req.StatePath); err != nil {
		return ResolveResult{}, err
	}
	kit, kitFound, err := s.applyKitState(&snapshot.Facts, req.KernelCollectionDir)
	if err != nil {
		return ResolveResult{}, err
	}

	flags, err := core.NewDetector().Detect(ctx, snapshot.Facts)
	if err != nil {
		return ResolveResult{}, err
	}

	table, err := s.loadCatalog(req.CatalogPath)
	if err != nil {
		return ResolveResult{}, err
	}
	plan, report, err := core.NewResolver(table).Resolve(ctx, flags, snapshot.Facts.OSVersion, snapshot.Security)
	if err != nil {
		return ResolveResult{}, err
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteCapabilities(flags); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WritePlan(plan); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteReport(report); err != nil {
		return ResolveResult{}, err
	}

	log.Ctx(ctx).Info().
		Str("model", snapshot.Facts.Model).
		Int("patches", len(plan.Patches)).
		Bool("can_apply", report.CanApply).
		Msg("resolution completed")
	return ResolveResult{
		Flags:    flags,
		Plan:     plan,
		Report:   report,
		Kit:      kit,
		KitFound: kitFound,
	}, nil
}

// loadCatalog returns the builtin table unless an override file was
// given.
func (s Service) loadCatalog(path string) (types.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return catalog.Builtin(), nil
	}
	return s.Catalogs.LoadCatalog(path)
}
