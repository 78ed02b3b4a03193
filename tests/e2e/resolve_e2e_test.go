package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rootpatch/tests/testutil"
)

func TestResolveCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	outDir := t.TempDir()

	cmd := exec.Command("go", "run", "./cmd/rootpatch", "resolve",
		"--snapshot", "fixtures/snapshot-sample.yaml",
		"--output", outDir,
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, filepath.Join(outDir, "capabilities.yaml"))
	require.FileExists(t, filepath.Join(outDir, "patch_plan.yaml"))
	require.FileExists(t, filepath.Join(outDir, "gating_report.yaml"))
}
