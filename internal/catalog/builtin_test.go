package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootpatch/internal/types"
)

func TestBuiltinHasNoDuplicateNames(t *testing.T) {
	seen := map[string]struct{}{}
	for _, entry := range Builtin().Entries() {
		_, dup := seen[entry.Name]
		require.Falsef(t, dup, "duplicate entry name: %s", entry.Name)
		seen[entry.Name] = struct{}{}
	}
}

func TestBuiltinEntriesAreWellFormed(t *testing.T) {
	for _, entry := range Builtin().Entries() {
		t.Run(entry.Name, func(t *testing.T) {
			assert.NotEmpty(t, entry.Name)
			assert.NotEmpty(t, entry.DisplayName)
			assert.False(t, entry.Support.Min.IsZero(), "support window needs a lower bound")
			assert.True(t, entry.Support.Max.AtLeast(entry.Support.Min), "support window must not be inverted")
			assert.True(t, len(entry.Operations.Install) > 0 || len(entry.Operations.Remove) > 0,
				"entry without operations would be a no-op")
			for _, component := range entry.Optional {
				assert.NotEmpty(t, component.Name)
				assert.NotEmpty(t, component.Target)
				assert.True(t, component.Window.Max.AtLeast(component.Window.Min))
			}
		})
	}
}

func TestBuiltinAlternativeGroupMembers(t *testing.T) {
	groups := map[string][]string{}
	for _, entry := range Builtin().Entries() {
		if entry.AlternativeGroup != "" {
			groups[entry.AlternativeGroup] = append(groups[entry.AlternativeGroup], entry.Name)
		}
	}
	require.Contains(t, groups, "gva")
	assert.ElementsMatch(t, []string{"High Sierra GVA", "Catalina GVA", "Monterey GVA"}, groups["gva"])
}

func TestBuiltinLookup(t *testing.T) {
	entry, ok := Builtin().Lookup("Nvidia Web Drivers")
	require.True(t, ok)
	// The third-party driver never made it past its last supported era.
	assert.False(t, entry.Support.Contains(types.Version{Major: 23, Minor: 0}))
	assert.True(t, entry.Support.Contains(types.Version{Major: 20, Minor: 4}))

	_, ok = Builtin().Lookup("No Such Patch")
	assert.False(t, ok)
}
