package ports

import "rootpatch/internal/types"

// KernelCollectionStorePort answers whether a usable debug kit for the
// running release is already on disk, preferring an exact build match
// and falling back to the closest earlier kit of the same major.
type KernelCollectionStorePort interface {
	Locate(version types.Version, build string) (types.KernelCollectionKit, bool, error)
}
