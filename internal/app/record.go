package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/types"
)

// PatcherVersion is stamped into every durable manifest this build
// writes.
const PatcherVersion = "1.0.0"

// Record writes the durable applied-patch manifest after an external
// executor has applied a resolved plan. It is the only operation that
// mutates state on disk outside the output directory.
func (s Service) Record(ctx context.Context, req RecordRequest) (RecordResult, error) {
	planPath := strings.TrimSpace(req.PlanPath)
	if planPath == "" {
		return RecordResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch plan path is required")
	}
	statePath := strings.TrimSpace(req.StatePath)
	if statePath == "" {
		return RecordResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("state file path is required")
	}

	plan, err := s.PlanReader.ReadPlan(planPath)
	if err != nil {
		return RecordResult{}, err
	}
	if plan.Empty() {
		return RecordResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("refusing to record an empty patch plan")
	}

	manifest := types.AppliedManifest{
		PatcherVersion:   PatcherVersion,
		OSVersion:        plan.OSVersion,
		OSBuild:          strings.TrimSpace(req.OSBuild),
		PatchedAt:        s.Clock().UTC().Format(time.RFC3339),
		KernelCollection: strings.TrimSpace(req.KernelCollection),
		Patches:          plan.Names(),
	}
	if err := s.State.WriteManifest(statePath, manifest); err != nil {
		return RecordResult{}, err
	}

	log.Ctx(ctx).Info().
		Str("state", statePath).
		Int("patches", len(manifest.Patches)).
		Msg("applied-patch manifest recorded")
	return RecordResult{Manifest: manifest}, nil
}
