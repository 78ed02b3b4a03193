package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootpatch/internal/types"
)

func placeKit(t *testing.T, dir, name string, usable bool) {
	t.Helper()
	kit := filepath.Join(dir, name)
	if !usable {
		require.NoError(t, os.MkdirAll(kit, 0755))
		return
	}
	sentinel := filepath.Join(kit, kitSentinel)
	require.NoError(t, os.MkdirAll(filepath.Dir(sentinel), 0755))
	require.NoError(t, os.WriteFile(sentinel, []byte{}, 0644))
}

func TestLocateExactBuildWins(t *testing.T) {
	dir := t.TempDir()
	placeKit(t, dir, "KDK_22.4_22E100.kdk", true)
	placeKit(t, dir, "KDK_22.2_22D49.kdk", true)

	kit, found, err := NewKernelCollectionStoreAdapter(dir).Locate(types.Version{Major: 22, Minor: 2}, "22D49")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, kit.ExactMatch)
	assert.Equal(t, "22D49", kit.Build)
}

func TestLocateClosestSameMajorFallback(t *testing.T) {
	dir := t.TempDir()
	placeKit(t, dir, "KDK_22.1_22C65.kdk", true)
	placeKit(t, dir, "KDK_22.2_22D49.kdk", true)
	placeKit(t, dir, "KDK_22.4_22E100.kdk", true)
	placeKit(t, dir, "KDK_21.6_21G72.kdk", true)

	kit, found, err := NewKernelCollectionStoreAdapter(dir).Locate(types.Version{Major: 22, Minor: 3}, "22D68")
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, kit.ExactMatch)
	assert.Equal(t, "22D49", kit.Build, "newest kit at or below the running release")
}

func TestLocateIgnoresUnusableAndForeignKits(t *testing.T) {
	dir := t.TempDir()
	placeKit(t, dir, "KDK_22.2_22D49.kdk", false)
	placeKit(t, dir, "KDK_23.0_23A344.kdk", true)
	placeKit(t, dir, "notes.txt.kdk", true)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644))

	_, found, err := NewKernelCollectionStoreAdapter(dir).Locate(types.Version{Major: 22, Minor: 2}, "22D49")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocateMissingStoreDirectory(t *testing.T) {
	_, found, err := NewKernelCollectionStoreAdapter(filepath.Join(t.TempDir(), "absent")).
		Locate(types.Version{Major: 22, Minor: 2}, "22D49")
	require.NoError(t, err)
	assert.False(t, found)
}
