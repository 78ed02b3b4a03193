package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

// catalogDocument is the on-disk shape of a catalog override file.
type catalogDocument struct {
	Entries []types.PatchEntry `yaml:"entries"`
}

type CatalogFileAdapter struct{}

func NewCatalogFileAdapter() CatalogFileAdapter {
	return CatalogFileAdapter{}
}

func (a CatalogFileAdapter) LoadCatalog(path string) (types.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
	}
	var document catalogDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog yaml").
			WithCause(err)
	}
	if len(document.Entries) == 0 {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file has no entries")
	}
	frozen, ok := types.NewCatalog(document.Entries)
	if !ok {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file contains duplicate entry names")
	}
	return frozen, nil
}
