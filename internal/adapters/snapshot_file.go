// Package adapters implements the file-backed sides of the ports:
// probe snapshots, catalog overrides, the applied-patch manifest, the
// local debug kit store, and the YAML output documents.
package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

type SnapshotFileAdapter struct{}

func NewSnapshotFileAdapter() SnapshotFileAdapter {
	return SnapshotFileAdapter{}
}

func (a SnapshotFileAdapter) LoadSnapshot(path string) (types.ProbeSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProbeSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("probe snapshot file not found").
			WithCause(err)
	}
	var snapshot types.ProbeSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return types.ProbeSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse probe snapshot yaml").
			WithCause(err)
	}
	return snapshot, nil
}
