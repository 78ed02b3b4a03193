package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootpatch/internal/app"
	"rootpatch/internal/types"
	"rootpatch/tests/testutil"
)

// TestGoldenResolve runs the full pipeline over the sample fixture and
// compares the output documents against committed golden files. If the
// golden files do not exist yet (first run), they are written so they
// can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenResolve(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	outDir := t.TempDir()

	service := app.NewService()
	result, err := service.Resolve(t.Context(), app.ResolveRequest{
		SnapshotPath: filepath.Join(root, "fixtures", "snapshot-sample.yaml"),
		OutputDir:    outDir,
	})
	require.NoError(t, err)

	t.Run("plan covers every raised capability", func(t *testing.T) {
		names := result.Plan.Names()
		assert.Contains(t, names, "Non-Metal Common")
		assert.Contains(t, names, "Non-Metal ColorSync Workaround")
		assert.Contains(t, names, "High Sierra GVA")
		assert.Contains(t, names, "Intel Sandy Bridge")
		assert.Contains(t, names, "Legacy Wireless")
		assert.Contains(t, names, "Legacy Wireless Extended")
		assert.Contains(t, names, "Legacy Bluetooth")
		assert.Contains(t, names, "Legacy GMUX")
		assert.Contains(t, names, "Legacy Keyboard Backlight")
	})

	t.Run("no duplicate entries", func(t *testing.T) {
		seen := map[string]struct{}{}
		for _, name := range result.Plan.Names() {
			_, dup := seen[name]
			require.Falsef(t, dup, "duplicate entry: %s", name)
			seen[name] = struct{}{}
		}
	})

	t.Run("gating reflects the enforcement posture", func(t *testing.T) {
		assert.False(t, result.Report.CanApply)
		assert.False(t, result.Report.CanRevert)
		assert.True(t, result.Report.BlockedBy(types.BlockSIPEnabled))
		assert.True(t, result.Report.BlockedBy(types.BlockSigningEnforced))
		assert.Equal(t, "0x803", result.Report.RequiredSIPValue)
	})

	for _, name := range []string{"capabilities.yaml", "patch_plan.yaml", "gating_report.yaml"} {
		t.Run(name, func(t *testing.T) {
			actual, err := os.ReadFile(filepath.Join(outDir, name))
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				// Golden file doesn't exist yet -- write it.
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestWirelessFallbackPipeline walks the detect -> record -> detect
// sequence that a wireless-only machine goes through across two runs.
func TestWirelessFallbackPipeline(t *testing.T) {
	root := testutil.RepoRoot(t)
	snapshotPath := filepath.Join(root, "fixtures", "snapshot-wireless-only.yaml")
	workDir := t.TempDir()
	statePath := filepath.Join(workDir, "applied.yaml")
	outDir := filepath.Join(workDir, "out")

	service := app.NewService()

	first, err := service.Resolve(t.Context(), app.ResolveRequest{
		SnapshotPath: snapshotPath,
		StatePath:    statePath,
		OutputDir:    outDir,
	})
	require.NoError(t, err)
	assert.True(t, first.Report.BlockedBy(types.BlockNetworkRequired),
		"first run offline without a record must demand network access")

	// Pretend an external executor applied the plan, then record it.
	_, err = service.Record(t.Context(), app.RecordRequest{
		PlanPath:  filepath.Join(outDir, "patch_plan.yaml"),
		StatePath: statePath,
		OSBuild:   "22D49",
	})
	require.NoError(t, err)

	second, err := service.Resolve(t.Context(), app.ResolveRequest{
		SnapshotPath: snapshotPath,
		StatePath:    statePath,
		OutputDir:    filepath.Join(workDir, "out2"),
	})
	require.NoError(t, err)
	assert.False(t, second.Report.BlockedBy(types.BlockNetworkRequired))
	assert.True(t, second.Report.CanApply)
	assert.Contains(t, second.Plan.Names(), "Legacy Wireless")
	assert.False(t, second.Flags.RequiresKernelCollection,
		"the committed record demotes the collection requirement")
}
