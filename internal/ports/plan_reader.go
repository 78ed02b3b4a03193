package ports

import "rootpatch/internal/types"

type PlanReaderPort interface {
	ReadPlan(path string) (types.PatchPlan, error)
}
