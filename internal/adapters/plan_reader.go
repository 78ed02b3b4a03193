package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

type PlanReaderAdapter struct{}

func NewPlanReaderAdapter() PlanReaderAdapter {
	return PlanReaderAdapter{}
}

func (a PlanReaderAdapter) ReadPlan(path string) (types.PatchPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PatchPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("patch plan file not found").
			WithCause(err)
	}
	var plan types.PatchPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return types.PatchPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse patch plan yaml").
			WithCause(err)
	}
	return plan, nil
}
