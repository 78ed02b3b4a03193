package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootpatch/internal/catalog"
	"rootpatch/internal/types"
)

func TestResolveEmptyFlagsYieldsEmptyPlan(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())

	plan, report, err := resolver.Resolve(t.Context(),
		types.CapabilityFlags{}, types.Version{Major: 23, Minor: 1}, types.SecurityPosture{})
	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.True(t, report.CanApply, "nothing to apply is not a blocked state")
	assert.Empty(t, report.Blocking)
}

func TestResolveKeplerOnMontereyFiltersByWindow(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		NvidiaKepler:             true,
		SupportsMetal:            true,
		RequiresKernelCollection: true,
	}

	plan, _, err := resolver.Resolve(t.Context(),
		flags, types.Version{Major: 21, Minor: 3}, types.SecurityPosture{})
	require.NoError(t, err)

	// The Ventura-only runtimes fall out of the window; everything else
	// keeps its rule-table position.
	want := []string{
		"Catalina GVA",
		"Monterey OpenCL",
		"Big Sur OpenCL",
		"WebKit Monterey Common",
		"Nvidia Kepler",
	}
	if diff := cmp.Diff(want, plan.Names()); diff != "" {
		t.Fatalf("unexpected plan (-want +got):\n%s", diff)
	}
}

func TestResolveHaswellPlusKeplerDeduplicatesAndSettlesAlternatives(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		IntelHaswell:             true,
		NvidiaKepler:             true,
		SupportsMetal:            true,
		HaswellUnitPresent:       true,
		RequiresKernelCollection: true,
	}

	plan, _, err := resolver.Resolve(t.Context(),
		flags, types.Version{Major: 22, Minor: 2}, types.SecurityPosture{})
	require.NoError(t, err)

	want := []string{
		"Metal 3802 Common",
		"Monterey GVA",
		"Monterey OpenCL",
		"Intel Haswell",
		"Revert Metal Downgrade",
		"Big Sur OpenCL",
		"WebKit Monterey Common",
		"Nvidia Kepler",
	}
	if diff := cmp.Diff(want, plan.Names()); diff != "" {
		t.Fatalf("unexpected plan (-want +got):\n%s", diff)
	}

	seen := map[string]int{}
	for _, name := range plan.Names() {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equalf(t, 1, count, "entry %s must appear exactly once", name)
	}
}

func TestResolveTeraScale2OptionalComponent(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	version := types.Version{Major: 20, Minor: 6}

	find := func(plan types.PatchPlan) types.PlannedPatch {
		for _, patch := range plan.Patches {
			if patch.Name == "AMD TeraScale 2" {
				return patch
			}
		}
		t.Fatal("AMD TeraScale 2 missing from plan")
		return types.PlannedPatch{}
	}

	t.Run("omitted without the opt-in", func(t *testing.T) {
		flags := types.CapabilityFlags{AMDTeraScale2: true, RequiresKernelCollection: true}
		plan, _, err := resolver.Resolve(t.Context(), flags, version, types.SecurityPosture{})
		require.NoError(t, err)
		patch := find(plan)
		assert.Contains(t, patch.OmittedComponents, "AMDRadeonX3000.kext")
		for _, items := range patch.Operations.Install {
			assert.NotContains(t, items, "AMDRadeonX3000.kext")
		}
	})

	t.Run("included with the opt-in", func(t *testing.T) {
		flags := types.CapabilityFlags{
			AMDTeraScale2:             true,
			AllowUnstableAcceleration: true,
			RequiresKernelCollection:  true,
		}
		plan, _, err := resolver.Resolve(t.Context(), flags, version, types.SecurityPosture{})
		require.NoError(t, err)
		patch := find(plan)
		assert.Empty(t, patch.OmittedComponents)
		assert.Contains(t, patch.Operations.Install["/System/Library/Extensions"], "AMDRadeonX3000.kext")
	})

	t.Run("omitted outside its own window", func(t *testing.T) {
		flags := types.CapabilityFlags{
			AMDTeraScale2:             true,
			AllowUnstableAcceleration: true,
			RequiresKernelCollection:  true,
		}
		plan, _, err := resolver.Resolve(t.Context(), flags, types.Version{Major: 23, Minor: 0}, types.SecurityPosture{})
		require.NoError(t, err)
		patch := find(plan)
		assert.Contains(t, patch.OmittedComponents, "AMDRadeonX3000.kext")
	})
}

func TestResolveGatingBlocksAndReleases(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		NvidiaTesla:              true,
		SigningExemption:         true,
		RequiresKernelCollection: true,
	}
	version := types.Version{Major: 20, Minor: 6}

	t.Run("enforcement posture blocks", func(t *testing.T) {
		posture := types.SecurityPosture{
			SIPEnabled:                true,
			SecureBootEnabled:         true,
			FileVaultEnabled:          true,
			LibraryValidationEnforced: true,
		}
		plan, report, err := resolver.Resolve(t.Context(), flags, version, posture)
		require.NoError(t, err)
		assert.False(t, plan.Empty(), "blocking never empties the plan")
		assert.False(t, report.CanApply)
		assert.False(t, report.CanRevert)
		assert.True(t, report.BlockedBy(types.BlockSIPEnabled))
		assert.True(t, report.BlockedBy(types.BlockSecureBootEnabled))
		assert.True(t, report.BlockedBy(types.BlockFileVaultEnabled))
		assert.True(t, report.BlockedBy(types.BlockSigningEnforced))
	})

	t.Run("relaxed posture applies", func(t *testing.T) {
		_, report, err := resolver.Resolve(t.Context(), flags, version, types.SecurityPosture{})
		require.NoError(t, err)
		assert.True(t, report.CanApply)
		assert.True(t, report.CanRevert)
	})

	t.Run("filevault tolerated on sealed snapshots", func(t *testing.T) {
		posture := types.SecurityPosture{FileVaultEnabled: true}
		_, report, err := resolver.Resolve(t.Context(), flags, types.Version{Major: 21, Minor: 2}, posture)
		require.NoError(t, err)
		assert.False(t, report.BlockedBy(types.BlockFileVaultEnabled))
	})
}

func TestResolveWebDriverPrerequisites(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		NvidiaWeb:                true,
		NeedsWebDriverChecks:     true,
		SigningExemption:         true,
		ShimmedBinaries:          true,
		RequiresKernelCollection: true,
	}
	version := types.Version{Major: 20, Minor: 4}

	t.Run("missing checks each block", func(t *testing.T) {
		_, report, err := resolver.Resolve(t.Context(), flags, version, types.SecurityPosture{})
		require.NoError(t, err)
		assert.Equal(t, "0xA03", report.RequiredSIPValue)
		assert.True(t, report.BlockedBy(types.BlockWebDriverNVRAMMissing))
		assert.True(t, report.BlockedBy(types.BlockWebDriverOpenGLMissing))
		assert.True(t, report.BlockedBy(types.BlockWebDriverCompatMissing))
		assert.True(t, report.BlockedBy(types.BlockWebDriverHelperMissing))
	})

	t.Run("satisfied checks release the plan", func(t *testing.T) {
		posture := types.SecurityPosture{
			WebDrivers: types.WebDriverChecks{
				NVRAMVariableSet: true,
				OpenGLForced:     true,
				CompatForced:     true,
				HelperKextLoaded: true,
			},
		}
		_, report, err := resolver.Resolve(t.Context(), flags, version, posture)
		require.NoError(t, err)
		assert.True(t, report.CanApply)
	})
}

func TestResolveNetworkRequiredBlocks(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		LegacyWireless:           true,
		RequiresKernelCollection: true,
		KernelCollectionMissing:  true,
		NetworkRequired:          true,
	}

	plan, report, err := resolver.Resolve(t.Context(),
		flags, types.Version{Major: 22, Minor: 1}, types.SecurityPosture{})
	require.NoError(t, err)
	assert.Contains(t, plan.Names(), "Legacy Wireless")
	assert.True(t, report.BlockedBy(types.BlockNetworkRequired))
	assert.False(t, report.CanApply)
}

func TestResolveSigningLevels(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())

	cases := []struct {
		name    string
		flags   types.CapabilityFlags
		version types.Version
		want    int
	}{
		{
			name:    "no exemption",
			flags:   types.CapabilityFlags{IntelIvy: true, SupportsMetal: true},
			version: types.Version{Major: 21, Minor: 2},
			want:    SigningLevelNone,
		},
		{
			name:    "library validation only",
			flags:   types.CapabilityFlags{NvidiaTesla: true, SigningExemption: true},
			version: types.Version{Major: 20, Minor: 6},
			want:    SigningLevelLibrary,
		},
		{
			name: "full bypass with shims",
			flags: types.CapabilityFlags{
				IntelSandy:       true,
				SigningExemption: true,
				ShimmedBinaries:  true,
			},
			version: types.Version{Major: 22, Minor: 2},
			want:    SigningLevelFullBypass,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, report, err := resolver.Resolve(t.Context(), tc.flags, tc.version, types.SecurityPosture{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, report.SigningLevel)
		})
	}
}

func TestResolveRequiredSIPValueByEra(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())

	_, report, err := resolver.Resolve(t.Context(),
		types.CapabilityFlags{NvidiaTesla: true}, types.Version{Major: 20, Minor: 6}, types.SecurityPosture{})
	require.NoError(t, err)
	assert.Equal(t, "0x802", report.RequiredSIPValue)

	_, report, err = resolver.Resolve(t.Context(),
		types.CapabilityFlags{IntelHaswell: true, SupportsMetal: true}, types.Version{Major: 22, Minor: 1}, types.SecurityPosture{})
	require.NoError(t, err)
	assert.Equal(t, "0x803", report.RequiredSIPValue)
}

func TestResolveIsIdempotent(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	flags := types.CapabilityFlags{
		IntelSandy:               true,
		LegacyWireless:           true,
		LegacyBluetooth:          true,
		SigningExemption:         true,
		RequiresKernelCollection: true,
	}
	version := types.Version{Major: 22, Minor: 2}
	posture := types.SecurityPosture{SIPEnabled: true}

	firstPlan, firstReport, err := resolver.Resolve(t.Context(), flags, version, posture)
	require.NoError(t, err)
	secondPlan, secondReport, err := resolver.Resolve(t.Context(), flags, version, posture)
	require.NoError(t, err)

	if diff := cmp.Diff(firstPlan, secondPlan); diff != "" {
		t.Fatalf("plan must be stable across calls (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstReport, secondReport); diff != "" {
		t.Fatalf("report must be stable across calls (-first +second):\n%s", diff)
	}
}

func TestResolveRejectsZeroVersion(t *testing.T) {
	resolver := NewResolver(catalog.Builtin())
	_, _, err := resolver.Resolve(t.Context(), types.CapabilityFlags{}, types.Version{}, types.SecurityPosture{})
	require.Error(t, err)
}

func TestResolveUnknownRuleEntryIsAnIntegrityError(t *testing.T) {
	sparse, ok := types.NewCatalog([]types.PatchEntry{{
		Name:    "Nvidia Tesla",
		Support: types.OSRange{Min: types.Version{Major: 20}, Max: types.Version{Major: 23, Minor: 99}},
	}})
	require.True(t, ok)
	resolver := NewResolver(sparse)

	_, _, err := resolver.Resolve(t.Context(),
		types.CapabilityFlags{NvidiaTesla: true}, types.Version{Major: 20, Minor: 6}, types.SecurityPosture{})
	require.Error(t, err, "rule table references entries the sparse catalog lacks")
}
