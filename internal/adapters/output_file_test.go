package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rootpatch/internal/types"
)

func TestOutputDocuments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	adapter := NewOutputFileAdapter(dir)

	require.NoError(t, adapter.WriteCapabilities(types.CapabilityFlags{NvidiaTesla: true}))
	require.NoError(t, adapter.WritePlan(types.PatchPlan{
		OSVersion: types.Version{Major: 20, Minor: 6},
		Patches:   []types.PlannedPatch{{Name: "Nvidia Tesla", DisplayName: "Nvidia Tesla graphics"}},
	}))
	require.NoError(t, adapter.WriteReport(types.GatingReport{
		Blocking:         []types.BlockingCondition{types.BlockSIPEnabled},
		RequiredSIPValue: "0x802",
		SigningLevel:     1,
	}))

	var flags types.CapabilityFlags
	data, err := os.ReadFile(filepath.Join(dir, "capabilities.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &flags))
	assert.True(t, flags.NvidiaTesla)

	var plan types.PatchPlan
	data, err = os.ReadFile(filepath.Join(dir, "patch_plan.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &plan))
	assert.Equal(t, []string{"Nvidia Tesla"}, plan.Names())

	var report types.GatingReport
	data, err = os.ReadFile(filepath.Join(dir, "gating_report.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.True(t, report.BlockedBy(types.BlockSIPEnabled))
	assert.Equal(t, "0x802", report.RequiredSIPValue)
}
