package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/policies"
	"rootpatch/internal/types"
)

// Resolver turns capability flags into an ordered patch plan and the
// gating report that says whether the plan may be applied right now.
type Resolver struct {
	Catalog types.Catalog
}

func NewResolver(catalog types.Catalog) Resolver {
	return Resolver{Catalog: catalog}
}

// SIP relaxation values by era, rendered the way firmware stores them.
const (
	sipValueWebDrivers = "0xA03"
	sipValueCurrent    = "0x803"
	sipValueBigSurEra  = "0x802"
	sipValueLegacy     = "0x603"
)

// Signing relaxation depths for the gating report.
const (
	SigningLevelNone       = 0
	SigningLevelLibrary    = 1
	SigningLevelFullBypass = 3
)

// Resolve walks the rule table in fixed priority order, filters every
// candidate entry by its support window, collapses duplicates keeping
// the earliest position, settles alternative groups, and attaches the
// gating report. Flags that survived normalization are trusted as-is;
// the resolver never re-derives hardware truths.
func (r Resolver) Resolve(ctx context.Context, flags types.CapabilityFlags, version types.Version, posture types.SecurityPosture) (types.PatchPlan, types.GatingReport, error) {
	if err := ValidateVersion(version); err != nil {
		return types.PatchPlan{}, types.GatingReport{}, err
	}

	names, err := r.collect(flags, version)
	if err != nil {
		return types.PatchPlan{}, types.GatingReport{}, err
	}
	names = r.settleAlternatives(names)
	names = r.applyDrops(names, flags)

	plan := types.PatchPlan{OSVersion: version}
	for _, name := range names {
		entry, ok := r.Catalog.Lookup(name)
		if !ok {
			// collect already verified membership; losing it here means
			// the catalog mutated mid-resolution.
			return types.PatchPlan{}, types.GatingReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("catalog entry vanished during resolution: %s", name))
		}
		plan.Patches = append(plan.Patches, r.plannedPatch(entry, flags, version))
	}

	report := r.gate(flags, version, posture)

	log.Ctx(ctx).Debug().
		Str("os", version.String()).
		Int("patches", len(plan.Patches)).
		Bool("can_apply", report.CanApply).
		Msg("patch set resolved")
	return plan, report, nil
}

// collect appends the catalog entries every raised flag demands, in the
// fixed priority order that decides plan position, then drops entries
// whose support window excludes the running release and collapses
// duplicates onto their earliest position.
func (r Resolver) collect(flags types.CapabilityFlags, version types.Version) ([]string, error) {
	var names []string

	if flags.IntelIronLake {
		names = append(names, "Non-Metal Common", "WebKit Monterey Common", "Intel Ironlake")
	}
	if flags.IntelSandy {
		names = append(names,
			"Non-Metal Common", "Non-Metal ColorSync Workaround", "High Sierra GVA",
			"WebKit Monterey Common", "Intel Sandy Bridge")
	}
	if flags.IntelIvy {
		names = append(names,
			"Metal 3802 Common", "Catalina GVA", "Monterey OpenCL", "Big Sur OpenCL",
			"WebKit Monterey Common", "Intel Ivy Bridge")
	}
	if flags.IntelHaswell {
		names = append(names, "Metal 3802 Common", "Monterey GVA", "Monterey OpenCL", "Intel Haswell")
	}
	if flags.IntelBroadwell {
		names = append(names, "Monterey GVA", "Monterey OpenCL", "Intel Broadwell")
	}
	if flags.IntelSkylake {
		names = append(names, "Monterey GVA", "Monterey OpenCL", "Intel Skylake")
	}
	if flags.NvidiaTesla {
		names = append(names, "Non-Metal Common", "WebKit Monterey Common", "Nvidia Tesla")
	}
	if flags.NvidiaWeb {
		names = append(names,
			"Non-Metal Common", "Non-Metal IOAccelerator Common", "Non-Metal CoreDisplay Common",
			"WebKit Monterey Common", "Nvidia Web Drivers", "Non-Metal Enforcement")
	}
	if flags.NvidiaKepler {
		names = append(names,
			"Revert Metal Downgrade", "Metal 3802 Common", "Catalina GVA", "Monterey OpenCL",
			"Big Sur OpenCL", "WebKit Monterey Common", "Nvidia Kepler")
	}
	if flags.AMDTeraScale1 {
		names = append(names,
			"Non-Metal Common", "WebKit Monterey Common", "AMD TeraScale Common", "AMD TeraScale 1")
	}
	if flags.AMDTeraScale2 {
		names = append(names,
			"Non-Metal Common", "Non-Metal IOAccelerator Common", "WebKit Monterey Common",
			"AMD TeraScale Common", "AMD TeraScale 2")
	}
	if flags.AMDGCN {
		names = append(names, "Revert Metal Downgrade", "Monterey GVA", "Monterey OpenCL", "AMD Legacy GCN")
		if flags.CPULacksAVX2 {
			names = append(names, "AMD OpenCL")
		}
	}
	if flags.AMDPolaris {
		names = append(names, "Revert Metal Downgrade", "Monterey GVA", "Monterey OpenCL", "AMD Legacy Polaris")
		if flags.CPULacksAVX2 {
			names = append(names, "AMD OpenCL")
		}
	}
	if flags.AMDVega {
		names = append(names,
			"Monterey GVA", "Monterey OpenCL", "AMD Legacy Vega", "AMD Legacy Vega Extended", "AMD OpenCL")
	}
	if flags.LegacyBrightness {
		names = append(names, "Legacy Backlight Control")
	}
	if flags.LegacyAudioRealtek {
		names = append(names, "Legacy Realtek")
	}
	if flags.LegacyAudioNonGOP {
		names = append(names, "Legacy Non-GOP")
	}
	if flags.LegacyWireless {
		names = append(names, "Legacy Wireless", "Legacy Wireless Extended")
	}
	if flags.LegacyBluetooth {
		names = append(names, "Legacy Bluetooth")
	}
	if flags.LegacyGMUX {
		names = append(names, "Legacy GMUX")
	}
	if flags.LegacyKeyboardBacklight {
		names = append(names, "Legacy Keyboard Backlight")
	}
	if flags.LegacyUSB11 {
		names = append(names, "Legacy USB 1.1")
	}

	seen := make(map[string]struct{}, len(names))
	kept := names[:0]
	for _, name := range names {
		entry, ok := r.Catalog.Lookup(name)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("rule table references unknown catalog entry: %s", name))
		}
		if !entry.Support.Contains(version) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, name)
	}
	return kept, nil
}

// settleAlternatives keeps exactly one member per alternative group,
// deleting the losers from their positions without disturbing the rest
// of the order.
func (r Resolver) settleAlternatives(names []string) []string {
	present := make(map[string][]string)
	for _, name := range names {
		entry, ok := r.Catalog.Lookup(name)
		if !ok || entry.AlternativeGroup == "" {
			continue
		}
		present[entry.AlternativeGroup] = append(present[entry.AlternativeGroup], name)
	}

	drop := make(map[string]struct{})
	for group, members := range present {
		if len(members) < 2 {
			continue
		}
		survivor, ok := policies.PreferredSurvivor(group, members)
		if !ok {
			// No ranking: the earliest collected member wins.
			survivor = members[0]
		}
		for _, member := range members {
			if member != survivor {
				drop[member] = struct{}{}
			}
		}
	}
	return removeNames(names, drop)
}

// applyDrops removes the entries the flag-level drop table rules out.
func (r Resolver) applyDrops(names []string, flags types.CapabilityFlags) []string {
	dropped := policies.DropsForFlags(flags)
	if len(dropped) == 0 {
		return names
	}
	drop := make(map[string]struct{}, len(dropped))
	for _, name := range dropped {
		drop[name] = struct{}{}
	}
	return removeNames(names, drop)
}

func removeNames(names []string, drop map[string]struct{}) []string {
	if len(drop) == 0 {
		return names
	}
	kept := names[:0]
	for _, name := range names {
		if _, gone := drop[name]; gone {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

// plannedPatch freezes one entry into the plan, gating its optional
// components individually. A failed component gate drops only the
// component and records the omission.
func (r Resolver) plannedPatch(entry types.PatchEntry, flags types.CapabilityFlags, version types.Version) types.PlannedPatch {
	planned := types.PlannedPatch{
		Name:        entry.Name,
		DisplayName: entry.DisplayName,
		Operations:  cloneOperations(entry.Operations),
	}
	for _, component := range entry.Optional {
		if component.OptIn && !flags.AllowUnstableAcceleration {
			planned.OmittedComponents = append(planned.OmittedComponents, component.Name)
			continue
		}
		if !component.Window.Contains(version) {
			planned.OmittedComponents = append(planned.OmittedComponents, component.Name)
			continue
		}
		if planned.Operations.Install == nil {
			planned.Operations.Install = make(map[string][]string)
		}
		planned.Operations.Install[component.Target] = append(planned.Operations.Install[component.Target], component.Name)
	}
	return planned
}

func cloneOperations(ops types.Operations) types.Operations {
	return types.Operations{
		Install: cloneTargets(ops.Install),
		Remove:  cloneTargets(ops.Remove),
	}
}

func cloneTargets(targets map[string][]string) map[string][]string {
	if targets == nil {
		return nil
	}
	cloned := make(map[string][]string, len(targets))
	for target, items := range targets {
		cloned[target] = append([]string(nil), items...)
	}
	return cloned
}

// gate builds the gating report for the current enforcement posture.
// The report is advisory output; it never mutates the plan.
func (r Resolver) gate(flags types.CapabilityFlags, version types.Version, posture types.SecurityPosture) types.GatingReport {
	report := types.GatingReport{
		RequiredSIPValue: r.requiredSIPValue(flags, version),
		SigningLevel:     r.signingLevel(flags, version),
		CanRevert:        !posture.SIPEnabled,
	}

	if posture.SIPEnabled {
		report.Blocking = append(report.Blocking, types.BlockSIPEnabled)
	}
	if posture.SecureBootEnabled {
		report.Blocking = append(report.Blocking, types.BlockSecureBootEnabled)
	}
	// Sealed-snapshot releases tolerate FileVault; the older layout
	// cannot be patched under it.
	if posture.FileVaultEnabled && version.AtMost(types.VersionBigSur) {
		report.Blocking = append(report.Blocking, types.BlockFileVaultEnabled)
	}
	if report.SigningLevel >= SigningLevelFullBypass && posture.SigningEnforced {
		report.Blocking = append(report.Blocking, types.BlockSigningEnforced)
	} else if report.SigningLevel >= SigningLevelLibrary && posture.LibraryValidationEnforced {
		report.Blocking = append(report.Blocking, types.BlockSigningEnforced)
	}
	if posture.ForeignPatches {
		report.Blocking = append(report.Blocking, types.BlockForeignPatches)
	}
	if flags.NeedsWebDriverChecks {
		checks := posture.WebDrivers
		if !checks.NVRAMVariableSet {
			report.Blocking = append(report.Blocking, types.BlockWebDriverNVRAMMissing)
		}
		if !checks.OpenGLForced {
			report.Blocking = append(report.Blocking, types.BlockWebDriverOpenGLMissing)
		}
		if !checks.CompatForced {
			report.Blocking = append(report.Blocking, types.BlockWebDriverCompatMissing)
		}
		if !checks.HelperKextLoaded {
			report.Blocking = append(report.Blocking, types.BlockWebDriverHelperMissing)
		}
	}
	if flags.NetworkRequired {
		report.Blocking = append(report.Blocking, types.BlockNetworkRequired)
	}

	report.CanApply = len(report.Blocking) == 0
	return report
}

// requiredSIPValue picks the csr-active-config relaxation by era. Web
// drivers need the widest bypass; newer releases grew extra bits.
func (r Resolver) requiredSIPValue(flags types.CapabilityFlags, version types.Version) string {
	switch {
	case flags.NvidiaWeb:
		return sipValueWebDrivers
	case version.AtLeast(types.VersionVentura):
		return sipValueCurrent
	case version.After(types.VersionCatalina):
		return sipValueBigSurEra
	default:
		return sipValueLegacy
	}
}

// signingLevel derives the signing relaxation depth from the raised
// requirement flags.
func (r Resolver) signingLevel(flags types.CapabilityFlags, version types.Version) int {
	if flags.ShimmedBinaries && flags.SigningExemption && version.AtLeast(types.VersionVentura) {
		return SigningLevelFullBypass
	}
	if flags.SigningExemption && version.After(types.VersionCatalina) {
		return SigningLevelLibrary
	}
	return SigningLevelNone
}
