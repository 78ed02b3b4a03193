package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"rootpatch/internal/core"
)

// Catalog lists the active catalog, optionally narrowed to the entries
// whose support window contains a given release.
func (s Service) Catalog(ctx context.Context, req CatalogRequest) (CatalogResult, error) {
	table, err := s.loadCatalog(req.CatalogPath)
	if err != nil {
		return CatalogResult{}, err
	}

	entries := table.Entries()
	if raw := strings.TrimSpace(req.OSVersion); raw != "" {
		version, err := core.ParseVersion(raw)
		if err != nil {
			return CatalogResult{}, err
		}
		filtered := entries[:0]
		for _, entry := range entries {
			if entry.Support.Contains(version) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	log.Ctx(ctx).Debug().Int("entries", len(entries)).Msg("catalog listed")
	return CatalogResult{Entries: entries}, nil
}
