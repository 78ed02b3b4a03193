package app

import "rootpatch/internal/types"

type DetectRequest struct {
	SnapshotPath        string
	StatePath           string
	KernelCollectionDir string
	OutputDir           string
}

type DetectResult struct {
	Flags types.CapabilityFlags
}

type ResolveRequest struct {
	SnapshotPath        string
	CatalogPath         string
	StatePath           string
	KernelCollectionDir string
	OutputDir           string
}

type ResolveResult struct {
	Flags  types.CapabilityFlags
	Plan   types.PatchPlan
	Report types.GatingReport

	Kit      types.KernelCollectionKit
	KitFound bool
}

type RecordRequest struct {
	PlanPath         string
	StatePath        string
	OSBuild          string
	KernelCollection string
}

type RecordResult struct {
	Manifest types.AppliedManifest
}

type CatalogRequest struct {
	CatalogPath string
	OSVersion   string
}

type CatalogResult struct {
	Entries []types.PatchEntry
}
