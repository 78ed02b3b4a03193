package ports

import "rootpatch/internal/types"

type CatalogSourcePort interface {
	LoadCatalog(path string) (types.Catalog, error)
}
