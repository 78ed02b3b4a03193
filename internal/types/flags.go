package types

// CapabilityFlags is the fixed-shape record detection produces. Exactly
// one pass writes it; afterwards it is immutable input to the resolver.
// The suppression rules guarantee at most one flag per mutually
// exclusive rendering group is true.
type CapabilityFlags struct {
	// Pre-acceleration rendering families.
	NvidiaTesla   bool `yaml:"nvidia_tesla"`
	NvidiaWeb     bool `yaml:"nvidia_web"`
	AMDTeraScale1 bool `yaml:"amd_terascale_1"`
	AMDTeraScale2 bool `yaml:"amd_terascale_2"`
	IntelIronLake bool `yaml:"intel_ironlake"`
	IntelSandy    bool `yaml:"intel_sandy_bridge"`

	// Metal-capable families that still need shims on newer releases.
	NvidiaKepler   bool `yaml:"nvidia_kepler"`
	AMDGCN         bool `yaml:"amd_gcn"`
	AMDPolaris     bool `yaml:"amd_polaris"`
	AMDVega        bool `yaml:"amd_vega"`
	IntelIvy       bool `yaml:"intel_ivy_bridge"`
	IntelHaswell   bool `yaml:"intel_haswell"`
	IntelBroadwell bool `yaml:"intel_broadwell"`
	IntelSkylake   bool `yaml:"intel_skylake"`

	// Non-graphics shims.
	LegacyBrightness        bool `yaml:"legacy_brightness"`
	LegacyAudioRealtek      bool `yaml:"legacy_audio_realtek"`
	LegacyAudioNonGOP       bool `yaml:"legacy_audio_non_gop"`
	LegacyWireless          bool `yaml:"legacy_wireless"`
	LegacyBluetooth         bool `yaml:"legacy_bluetooth"`
	LegacyGMUX              bool `yaml:"legacy_gmux"`
	LegacyKeyboardBacklight bool `yaml:"legacy_keyboard_backlight"`
	LegacyUSB11             bool `yaml:"legacy_usb11"`

	// Requirements derived alongside the families.
	SupportsMetal        bool `yaml:"supports_metal"`
	SigningExemption     bool `yaml:"signing_exemption"`
	ShimmedBinaries      bool `yaml:"shimmed_binaries"`
	NeedsWebDriverChecks bool `yaml:"needs_web_driver_checks"`

	// Auxiliary kernel collection state.
	RequiresKernelCollection bool `yaml:"requires_kernel_collection"`
	KernelCollectionMissing  bool `yaml:"kernel_collection_missing"`
	NetworkRequired          bool `yaml:"network_required"`

	// Fact mirrors the resolver needs for its preference rules.
	HaswellUnitPresent bool `yaml:"haswell_unit_present"`
	CPULacksAVX2       bool `yaml:"cpu_lacks_avx2"`

	// Opt-in toggles forwarded to entry-level gating.
	AllowUnstableAcceleration bool `yaml:"allow_unstable_acceleration"`
}

// AnyGraphics reports whether any rendering family flag is raised.
func (f CapabilityFlags) AnyGraphics() bool {
	return f.NvidiaTesla || f.NvidiaWeb || f.AMDTeraScale1 || f.AMDTeraScale2 ||
		f.IntelIronLake || f.IntelSandy || f.NvidiaKepler || f.AMDGCN ||
		f.AMDPolaris || f.AMDVega || f.IntelIvy || f.IntelHaswell ||
		f.IntelBroadwell || f.IntelSkylake
}

// NonMetal reports whether any pre-acceleration family flag is raised.
func (f CapabilityFlags) NonMetal() bool {
	return f.NvidiaTesla || f.NvidiaWeb || f.AMDTeraScale1 || f.AMDTeraScale2 ||
		f.IntelIronLake || f.IntelSandy
}

// Any reports whether any patchable capability at all is raised.
func (f CapabilityFlags) Any() bool {
	return f.AnyGraphics() || f.LegacyBrightness || f.LegacyAudioRealtek ||
		f.LegacyAudioNonGOP || f.LegacyWireless || f.LegacyBluetooth ||
		f.LegacyGMUX || f.LegacyKeyboardBacklight || f.LegacyUSB11
}
