package ports

import "rootpatch/internal/types"

// ManifestStatePort reads and writes the durable applied-patch record on
// the root volume. A missing record is a normal first-run state, not an
// error.
type ManifestStatePort interface {
	ReadManifest(path string) (types.AppliedManifest, bool, error)
	WriteManifest(path string, manifest types.AppliedManifest) error
}
