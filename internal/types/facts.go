package types

// GPU is one detected graphics unit.
type GPU struct {
	Arch       GPUArch `yaml:"arch"`
	Integrated bool    `yaml:"integrated,omitempty"`

	// Disabled marks a unit the firmware has cut off (class code reads
	// all ones on demuxed boards). Disabled units raise no flags.
	Disabled bool `yaml:"disabled,omitempty"`
}

// Overrides are the user-supplied toggles that steer detection.
type Overrides struct {
	// ForceWebDrivers routes Kepler units onto the third-party web
	// driver path instead of the native Metal one.
	ForceWebDrivers bool `yaml:"force_web_drivers,omitempty"`

	// AllowUnstableAcceleration opts into the TeraScale 2 accelerator
	// kext, which is known to panic on boards without the GPU rework.
	AllowUnstableAcceleration bool `yaml:"allow_unstable_acceleration,omitempty"`

	// DisableExternalGPU mirrors the boot argument that hides
	// non-integrated units from the OS.
	DisableExternalGPU bool `yaml:"disable_external_gpu,omitempty"`
}

// Environment carries pre-resolved booleans from external collaborators.
// The detector never performs IO; callers answer these questions before
// detection runs.
type Environment struct {
	NetworkAvailable          bool `yaml:"network_available"`
	KernelCollectionInstalled bool `yaml:"kernel_collection_installed"`

	// WirelessFixCommitted is true when a durable manifest from a prior
	// run records the wireless patch as applied to the root volume.
	WirelessFixCommitted bool `yaml:"wireless_fix_committed"`

	// AudioShimLoaded reports whether the injected audio codec kext is
	// active, which makes the on-disk audio patch unnecessary.
	AudioShimLoaded bool `yaml:"audio_shim_loaded"`
}

// HardwareFacts is the immutable probe snapshot a single detection run
// consumes. Hardware enumeration itself lives outside this module; the
// probe hands over architecture tags and presence booleans only.
type HardwareFacts struct {
	Model     string  `yaml:"model"`
	OSVersion Version `yaml:"os_version"`
	OSBuild   string  `yaml:"os_build,omitempty"`

	GPUs           []GPU               `yaml:"gpus,omitempty"`
	Wireless       WirelessChipset     `yaml:"wireless,omitempty"`
	Bluetooth      BluetoothChipset    `yaml:"bluetooth,omitempty"`
	USBControllers []USBControllerKind `yaml:"usb_controllers,omitempty"`

	CPUGeneration      CPUGeneration `yaml:"cpu_generation,omitempty"`
	CPUFeatures        []string      `yaml:"cpu_features,omitempty"`
	AmbientLightSensor bool          `yaml:"ambient_light_sensor,omitempty"`

	Hackintosh    bool `yaml:"hackintosh,omitempty"`
	RosettaActive bool `yaml:"rosetta_active,omitempty"`

	Overrides   Overrides   `yaml:"overrides,omitempty"`
	Environment Environment `yaml:"environment"`
}

// HasCPUFeature reports whether the probe saw the named CPUID leaf.
func (f HardwareFacts) HasCPUFeature(name string) bool {
	for _, feature := range f.CPUFeatures {
		if feature == name {
			return true
		}
	}
	return false
}

// Laptop reports whether the model identifier names a portable. Keyboard
// backlight handling only applies to portables; desktops expose a
// lookalike ACPI device that is not a backlight.
func (f HardwareFacts) Laptop() bool {
	return len(f.Model) >= 7 && f.Model[:7] == "MacBook"
}

// WebDriverChecks are the firmware and kext prerequisites the web driver
// patch set depends on. Supplied by the security-policy collaborator.
type WebDriverChecks struct {
	NVRAMVariableSet bool `yaml:"nvram_variable_set"`
	OpenGLForced     bool `yaml:"opengl_forced"`
	CompatForced     bool `yaml:"compat_forced"`
	HelperKextLoaded bool `yaml:"helper_kext_loaded"`
}

// SecurityPosture is the checklist of enforcement states gating consults.
// Each field holds the current position, not the desired one.
type SecurityPosture struct {
	SIPEnabled                bool `yaml:"sip_enabled"`
	SecureBootEnabled         bool `yaml:"secure_boot_enabled"`
	FileVaultEnabled          bool `yaml:"filevault_enabled"`
	SigningEnforced           bool `yaml:"signing_enforced"`
	LibraryValidationEnforced bool `yaml:"library_validation_enforced"`

	// ForeignPatches marks a root volume already modified by another
	// patcher; applying on top of it is never safe.
	ForeignPatches bool `yaml:"foreign_patches"`

	WebDrivers WebDriverChecks `yaml:"web_drivers,omitempty"`
}

// ProbeSnapshot is the full input document for one resolution run.
type ProbeSnapshot struct {
	Facts    HardwareFacts   `yaml:"facts"`
	Security SecurityPosture `yaml:"security"`
}
