package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

// ReadManifest loads the durable applied-patch record. A missing file is
// the normal first-run state and reports found=false without an error.
func (a ManifestFileAdapter) ReadManifest(path string) (types.AppliedManifest, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.AppliedManifest{}, false, nil
	}
	if err != nil {
		return types.AppliedManifest{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read applied-patch manifest").
			WithCause(err)
	}
	var manifest types.AppliedManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.AppliedManifest{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse applied-patch manifest").
			WithCause(err)
	}
	return manifest, true, nil
}

func (a ManifestFileAdapter) WriteManifest(path string, manifest types.AppliedManifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode applied-patch manifest").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create manifest directory").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0644)
}
