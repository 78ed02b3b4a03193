package ports

import "rootpatch/internal/types"

type SnapshotSourcePort interface {
	LoadSnapshot(path string) (types.ProbeSnapshot, error)
}
