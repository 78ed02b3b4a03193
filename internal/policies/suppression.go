// Package policies holds the fixed rule tables the detector and
// resolver consult: suppression of mutually exclusive capability flags
// and preference ordering between alternative catalog entries.
package policies

import (
	"rootpatch/internal/types"
)

// Normalize is the deterministic pass that runs after per-unit mapping.
// It enforces the mutual-exclusion invariants, settles the auxiliary
// kernel collection requirement, and applies the offline fallback
// demotion. It is a pure function over its inputs.
func Normalize(flags types.CapabilityFlags, facts types.HardwareFacts) types.CapabilityFlags {
	flags = suppressNonMetal(flags)
	flags = suppressNarrowSiblings(flags)
	flags = settleKernelCollection(flags, facts)
	flags = demoteForOfflineWireless(flags, facts)
	return flags
}

// suppressNonMetal clears every pre-acceleration family when a
// Metal-capable unit was found. The accelerated unit always wins when
// both eras are physically present, the classic case being an iMac with
// a Sandy Bridge iGPU next to a Kepler dGPU.
func suppressNonMetal(flags types.CapabilityFlags) types.CapabilityFlags {
	if !flags.SupportsMetal {
		return flags
	}
	flags.NvidiaTesla = false
	flags.NvidiaWeb = false
	flags.NeedsWebDriverChecks = false
	flags.AMDTeraScale1 = false
	flags.AMDTeraScale2 = false
	flags.IntelIronLake = false
	flags.IntelSandy = false
	flags.LegacyKeyboardBacklight = false
	return flags
}

// suppressNarrowSiblings clears Polaris and Vega when the broader GCN
// flag is raised. The three families share portions of the native AMD
// stack, so exactly one of them may drive the shared runtime; GCN wins
// as the internal card.
func suppressNarrowSiblings(flags types.CapabilityFlags) types.CapabilityFlags {
	if !flags.AMDGCN {
		return flags
	}
	flags.AMDPolaris = false
	flags.AMDVega = false
	return flags
}

// settleKernelCollection finalizes the auxiliary collection requirement.
// Releases up to Monterey always rebuild against the collection; newer
// releases need it only when a raised flag demands it, and then its
// absence becomes a fact the gating report must see.
func settleKernelCollection(flags types.CapabilityFlags, facts types.HardwareFacts) types.CapabilityFlags {
	if facts.OSVersion.AtMost(types.VersionMonterey) {
		flags.RequiresKernelCollection = true
		flags.KernelCollectionMissing = false
		return flags
	}
	if flags.RequiresKernelCollection {
		flags.KernelCollectionMissing = !facts.Environment.KernelCollectionInstalled
	}
	return flags
}

// demoteForOfflineWireless is the compatibility escape hatch for
// wireless-only machines whose sole network path is the very interface
// being patched. When the collection cannot be fetched and a previous
// run durably committed the wireless fix, the collection requirement is
// dropped together with every capability that depends on it, leaving
// the self-sufficient wireless shim in place. Without the committed
// record the requirement stands and gating surfaces the network demand.
func demoteForOfflineWireless(flags types.CapabilityFlags, facts types.HardwareFacts) types.CapabilityFlags {
	version := facts.OSVersion
	if version.Before(types.VersionVentura) {
		return flags
	}
	if !flags.LegacyWireless || !flags.RequiresKernelCollection || !flags.KernelCollectionMissing {
		return flags
	}
	if facts.Environment.NetworkAvailable {
		return flags
	}

	if !facts.Environment.WirelessFixCommitted {
		flags.NetworkRequired = true
		return flags
	}

	flags.RequiresKernelCollection = false
	flags.KernelCollectionMissing = false
	flags.NetworkRequired = false

	// Every collection-dependent capability is shed; the wireless shim
	// carries its own payload and survives on its own.
	flags.NvidiaTesla = false
	flags.NvidiaWeb = false
	flags.NeedsWebDriverChecks = false
	flags.AMDTeraScale1 = false
	flags.AMDTeraScale2 = false
	flags.NvidiaKepler = false
	flags.AMDGCN = false
	flags.AMDPolaris = false
	flags.AMDVega = false
	flags.IntelIronLake = false
	flags.IntelSandy = false
	flags.IntelIvy = false
	flags.IntelHaswell = false
	flags.IntelBroadwell = false
	flags.IntelSkylake = false
	flags.SupportsMetal = false
	flags.ShimmedBinaries = false
	flags.LegacyBrightness = false
	flags.LegacyAudioRealtek = false
	flags.LegacyAudioNonGOP = false
	flags.LegacyGMUX = false
	flags.LegacyKeyboardBacklight = false
	flags.LegacyUSB11 = false
	return flags
}
