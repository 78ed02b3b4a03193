// Package app wires the pure engines to the file-backed adapters and
// exposes the operations the CLI calls.
package app

import (
	"time"

	"rootpatch/internal/adapters"
	"rootpatch/internal/ports"
)

type Service struct {
	Snapshots  ports.SnapshotSourcePort
	Catalogs   ports.CatalogSourcePort
	State      ports.ManifestStatePort
	PlanReader ports.PlanReaderPort
	Clock      func() time.Time
}

func NewService() Service {
	return Service{
		Snapshots:  adapters.NewSnapshotFileAdapter(),
		Catalogs:   adapters.NewCatalogFileAdapter(),
		State:      adapters.NewManifestFileAdapter(),
		PlanReader: adapters.NewPlanReaderAdapter(),
		Clock:      time.Now,
	}
}
