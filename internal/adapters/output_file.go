package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

func (a OutputFileAdapter) WriteCapabilities(flags types.CapabilityFlags) error {
	return a.writeYAML("capabilities.yaml", flags)
}

func (a OutputFileAdapter) WritePlan(plan types.PatchPlan) error {
	return a.writeYAML("patch_plan.yaml", plan)
}

func (a OutputFileAdapter) WriteReport(report types.GatingReport) error {
	return a.writeYAML("gating_report.yaml", report)
}

func (a OutputFileAdapter) writeYAML(name string, value any) error {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode output document").
			WithCause(err)
	}
	return os.WriteFile(filepath.Join(a.Dir, name), data, 0644)
}
