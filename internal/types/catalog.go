package types

// Operations is the opaque file-level payload of a catalog entry. The
// resolver carries it through untouched; only the executor collaborator
// interprets it.
type Operations struct {
	// Install maps a target directory to the payload items placed there.
	Install map[string][]string `yaml:"install,omitempty"`
	// Remove maps a target directory to the items deleted from there.
	Remove map[string][]string `yaml:"remove,omitempty"`
}

// OptionalComponent is a sub-payload of an entry that is gated
// independently of its parent: an opt-in toggle plus its own OS window.
// When the gate fails only the component is dropped, never the entry.
type OptionalComponent struct {
	Name    string  `yaml:"name"`
	Target  string  `yaml:"target"`
	Window  OSRange `yaml:"window"`
	OptIn   bool    `yaml:"opt_in,omitempty"`
	Comment string  `yaml:"comment,omitempty"`
}

// PatchEntry is one named, versioned bundle of compatibility operations.
// Entries never mutate at runtime; the catalog is loaded once per
// process and frozen before the first resolution.
type PatchEntry struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Support     OSRange `yaml:"support"`

	Operations Operations          `yaml:"operations,omitempty"`
	Optional   []OptionalComponent `yaml:"optional,omitempty"`

	// AlternativeGroup names the capability this entry competes for.
	// When two members of the same group land in one plan, the
	// preference table keeps exactly one.
	AlternativeGroup string `yaml:"alternative_group,omitempty"`
}

// Catalog is the frozen lookup table the resolver walks.
type Catalog struct {
	entries []PatchEntry
	byName  map[string]int
}

// NewCatalog freezes a set of entries into a lookup table. Duplicate
// names are a data error.
func NewCatalog(entries []PatchEntry) (Catalog, bool) {
	byName := make(map[string]int, len(entries))
	for i, entry := range entries {
		if _, exists := byName[entry.Name]; exists {
			return Catalog{}, false
		}
		byName[entry.Name] = i
	}
	return Catalog{entries: entries, byName: byName}, true
}

// Lookup returns the entry registered under name.
func (c Catalog) Lookup(name string) (PatchEntry, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return PatchEntry{}, false
	}
	return c.entries[idx], true
}

// Len returns the number of registered entries.
func (c Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the registered entries in declaration order.
func (c Catalog) Entries() []PatchEntry {
	return append([]PatchEntry(nil), c.entries...)
}
