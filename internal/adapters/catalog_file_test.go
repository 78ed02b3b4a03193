package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootpatch/internal/types"
)

const catalogYAML = `entries:
  - name: Nvidia Tesla
    display_name: Nvidia Tesla graphics
    support:
      min: {major: 20, minor: 0}
      max: {major: 23, minor: 99}
    operations:
      install:
        /System/Library/Extensions:
          - NVDAResmanTesla.kext
  - name: Legacy Wireless
    display_name: Legacy wireless networking
    support:
      min: {major: 21, minor: 0}
      max: {major: 23, minor: 99}
    operations:
      install:
        /System/Library/Extensions:
          - IO80211Family.kext
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0644))

	loaded, err := NewCatalogFileAdapter().LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	entry, ok := loaded.Lookup("Nvidia Tesla")
	require.True(t, ok)
	assert.True(t, entry.Support.Contains(types.Version{Major: 21, Minor: 6}))
	assert.Contains(t, entry.Operations.Install["/System/Library/Extensions"], "NVDAResmanTesla.kext")
}

func TestLoadCatalogRejectsDuplicates(t *testing.T) {
	duplicated := catalogYAML + `  - name: Nvidia Tesla
    display_name: duplicate
    support:
      min: {major: 20, minor: 0}
      max: {major: 23, minor: 99}
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(duplicated), 0644))

	_, err := NewCatalogFileAdapter().LoadCatalog(path)
	require.Error(t, err)
}

func TestLoadCatalogRejectsEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []"), 0644))

	_, err := NewCatalogFileAdapter().LoadCatalog(path)
	require.Error(t, err)
}
