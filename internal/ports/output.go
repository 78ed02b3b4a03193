package ports

import "rootpatch/internal/types"

type OutputPort interface {
	WriteCapabilities(flags types.CapabilityFlags) error
	WritePlan(plan types.PatchPlan) error
	WriteReport(report types.GatingReport) error
}
