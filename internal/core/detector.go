// Package core houses the pure decision engines: capability detection
// over a probe snapshot and patch resolution against a frozen catalog.
// Nothing in this package performs IO; collaborators answer every
// environmental question up front through the facts document.
package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/policies"
	"rootpatch/internal/types"
)

// Detector collapses a hardware probe snapshot into capability flags.
type Detector struct{}

func NewDetector() Detector {
	return Detector{}
}

// Models whose display backlight controller lost its native driver.
var legacyBrightnessModels = map[string]struct{}{
	"iMac7,1": {},
	"iMac8,1": {},
	"iMac9,1": {},
}

// Models with Realtek codecs that need the full legacy audio stack.
var realtekAudioModels = map[string]struct{}{
	"iMac7,1": {},
	"iMac8,1": {},
}

// Models whose factory GPU was swapped for a card without GOP firmware,
// losing the audio controller handoff in the process.
var nonGOPAudioModels = map[string]struct{}{
	"iMac10,1": {},
	"iMac11,1": {},
	"iMac11,2": {},
	"iMac11,3": {},
	"iMac12,1": {},
	"iMac12,2": {},
}

// Models carrying the software-controlled graphics multiplexer.
var legacyGMUXModels = map[string]struct{}{
	"MacBookPro8,2": {},
	"MacBookPro8,3": {},
}

// Polaris boards that stay on the legacy GCN stack even next to an
// AVX2-capable CPU; their framebuffer never made it into the native
// driver.
var polarisGCNExceptionModels = map[string]struct{}{
	"MacBookPro13,3": {},
}

// Cheese-grater towers whose USB 1.1 controllers outlived their CPUs.
var legacyUSBTowerModels = map[string]struct{}{
	"MacPro4,1": {},
	"MacPro5,1": {},
}

// keplerBrokenBuild is the one seed build whose Kepler stack still
// worked natively; patching it would downgrade a functional driver.
const keplerBrokenBuild = "21A5506j"

// Detect maps the probe snapshot onto capability flags and runs the
// normalization pass over the result. The same snapshot always yields
// the same flags. Unknown architecture tags fail the whole run rather
// than silently skipping a unit.
func (d Detector) Detect(ctx context.Context, facts types.HardwareFacts) (types.CapabilityFlags, error) {
	assert.NotEmpty(ctx, facts.Model, "facts.model must be set")
	if err := ValidateVersion(facts.OSVersion); err != nil {
		return types.CapabilityFlags{}, err
	}

	var flags types.CapabilityFlags
	flags.CPULacksAVX2 = !facts.HasCPUFeature("avx2")
	flags.AllowUnstableAcceleration = facts.Overrides.AllowUnstableAcceleration

	for _, gpu := range facts.GPUs {
		if gpu.Arch == types.GPUArchIntelHaswell {
			flags.HaswellUnitPresent = true
		}
		if gpu.Disabled {
			continue
		}
		if !gpu.Integrated && facts.Overrides.DisableExternalGPU {
			continue
		}
		if err := d.detectGPU(&flags, gpu, facts); err != nil {
			return types.CapabilityFlags{}, err
		}
	}

	d.detectWireless(&flags, facts)
	d.detectBluetooth(&flags, facts)
	d.detectBrightness(&flags, facts)
	d.detectAudio(&flags, facts)
	d.detectGMUX(&flags, facts)
	d.detectUSB(&flags, facts)

	flags = policies.Normalize(flags, facts)

	log.Ctx(ctx).Debug().
		Str("model", facts.Model).
		Str("os", facts.OSVersion.String()).
		Bool("graphics", flags.AnyGraphics()).
		Bool("any", flags.Any()).
		Msg("capabilities detected")
	return flags, nil
}

// detectGPU raises the flags one enabled unit contributes. The switch
// is exhaustive over the architecture enum.
func (d Detector) detectGPU(flags *types.CapabilityFlags, gpu types.GPU, facts types.HardwareFacts) error {
	version := facts.OSVersion

	switch gpu.Arch {
	case types.GPUArchNvidiaTesla:
		if version.After(types.VersionCatalina) && !facts.Overrides.ForceWebDrivers {
			flags.NvidiaTesla = true
			d.raisePreAcceleration(flags, facts)
		}

	case types.GPUArchNvidiaKepler:
		if facts.Overrides.ForceWebDrivers {
			d.raiseWebDrivers(flags, facts)
			break
		}
		if d.keplerNeedsPatching(facts) {
			flags.NvidiaKepler = true
			flags.SupportsMetal = true
			if version.AtLeast(types.VersionVentura) {
				flags.SigningExemption = true
			}
			flags.RequiresKernelCollection = true
		}

	case types.GPUArchNvidiaFermi, types.GPUArchNvidiaMaxwell, types.GPUArchNvidiaPascal:
		d.raiseWebDrivers(flags, facts)

	case types.GPUArchAMDTeraScale1:
		if version.After(types.VersionCatalina) {
			flags.AMDTeraScale1 = true
			d.raisePreAcceleration(flags, facts)
		}

	case types.GPUArchAMDTeraScale2:
		if version.After(types.VersionCatalina) {
			flags.AMDTeraScale2 = true
			d.raisePreAcceleration(flags, facts)
		}

	case types.GPUArchAMDGCN:
		if version.After(types.VersionMonterey) && !facts.RosettaActive {
			flags.AMDGCN = true
			d.raiseModernAMD(flags)
		}

	case types.GPUArchAMDPolaris:
		if version.After(types.VersionMonterey) && !facts.RosettaActive {
			if !flags.CPULacksAVX2 {
				// Native driver keeps working next to AVX2, except on
				// the boards whose framebuffer it never learned.
				if _, exception := polarisGCNExceptionModels[facts.Model]; !exception {
					break
				}
				flags.AMDGCN = true
				d.raiseModernAMD(flags)
				break
			}
			flags.AMDPolaris = true
			d.raiseModernAMD(flags)
		}

	case types.GPUArchAMDVega:
		if version.After(types.VersionMonterey) && !facts.RosettaActive && flags.CPULacksAVX2 {
			flags.AMDVega = true
			d.raiseModernAMD(flags)
		}

	case types.GPUArchIntelIronLake:
		if version.After(types.VersionCatalina) {
			flags.IntelIronLake = true
			d.raisePreAcceleration(flags, facts)
		}

	case types.GPUArchIntelSandyBridge:
		if version.After(types.VersionCatalina) {
			flags.IntelSandy = true
			d.raisePreAcceleration(flags, facts)
		}

	case types.GPUArchIntelIvyBridge:
		if version.After(types.VersionBigSur) {
			flags.IntelIvy = true
			flags.SupportsMetal = true
			if version.AtLeast(types.VersionVentura) {
				flags.SigningExemption = true
			}
			flags.RequiresKernelCollection = true
		}

	case types.GPUArchIntelHaswell:
		if version.After(types.VersionMonterey) {
			flags.IntelHaswell = true
			flags.SupportsMetal = true
			flags.SigningExemption = true
			flags.RequiresKernelCollection = true
		}

	case types.GPUArchIntelBroadwell:
		if version.After(types.VersionMonterey) {
			flags.IntelBroadwell = true
			flags.SupportsMetal = true
			flags.SigningExemption = true
			flags.RequiresKernelCollection = true
		}

	case types.GPUArchIntelSkylake:
		if version.After(types.VersionMonterey) {
			flags.IntelSkylake = true
			flags.SupportsMetal = true
			flags.SigningExemption = true
			flags.RequiresKernelCollection = true
		}

	case types.GPUArchModern:
		// Runs natively, contributes nothing.

	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown GPU architecture: %s", gpu.Arch))
	}
	return nil
}

// raisePreAcceleration raises the requirements every pre-Metal family
// shares: a signing exemption, shimmed binaries on current releases, the
// auxiliary kernel collection, and the keyboard backlight agent on
// portables with a light sensor.
func (d Detector) raisePreAcceleration(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	flags.SigningExemption = true
	flags.RequiresKernelCollection = true
	if facts.OSVersion.AtLeast(types.VersionVentura) {
		flags.ShimmedBinaries = true
	}
	if facts.Laptop() && facts.AmbientLightSensor {
		flags.LegacyKeyboardBacklight = true
	}
}

// raiseWebDrivers routes a unit onto the third-party web driver stack.
// The driver has an explicit ceiling: upstream abandoned it, so releases
// past its last working era never raise the flag.
func (d Detector) raiseWebDrivers(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if !facts.OSVersion.After(types.VersionMojave) {
		return
	}
	if facts.OSVersion.Major > types.VersionVentura.Major {
		return
	}
	flags.NvidiaWeb = true
	flags.NeedsWebDriverChecks = true
	flags.SigningExemption = true
	flags.ShimmedBinaries = true
	flags.RequiresKernelCollection = true
	if facts.Laptop() && facts.AmbientLightSensor {
		flags.LegacyKeyboardBacklight = true
	}
}

// raiseModernAMD raises the requirements the GCN, Polaris, and Vega
// families share.
func (d Detector) raiseModernAMD(flags *types.CapabilityFlags) {
	flags.SupportsMetal = true
	flags.SigningExemption = true
	flags.RequiresKernelCollection = true
}

// keplerNeedsPatching reports whether the Kepler driver is gone from the
// running release. The driver survived into the first seed of its last
// major, so the build matters there.
func (d Detector) keplerNeedsPatching(facts types.HardwareFacts) bool {
	version := facts.OSVersion
	if version.AtLeast(types.VersionVentura) {
		return true
	}
	if version.Major == types.VersionMonterey.Major {
		return version.Minor > 0 && facts.OSBuild != keplerBrokenBuild
	}
	return false
}

func (d Detector) detectWireless(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if !facts.Wireless.Legacy() || !facts.OSVersion.After(types.VersionBigSur) {
		return
	}
	flags.LegacyWireless = true
	if facts.OSVersion.AtLeast(types.VersionVentura) {
		flags.SigningExemption = true
	}
}

func (d Detector) detectBluetooth(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if facts.Bluetooth.Legacy() && facts.OSVersion.AtLeast(types.VersionMonterey) {
		flags.LegacyBluetooth = true
	}
}

func (d Detector) detectBrightness(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if _, ok := legacyBrightnessModels[facts.Model]; !ok {
		return
	}
	if facts.OSVersion.After(types.VersionCatalina) {
		flags.LegacyBrightness = true
		flags.RequiresKernelCollection = true
	}
}

// detectAudio picks between the two legacy audio paths. Realtek boards
// always need the full stack; non-GOP boards only need it while the
// injected codec shim is absent.
func (d Detector) detectAudio(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if !facts.OSVersion.After(types.VersionCatalina) {
		return
	}
	if _, ok := realtekAudioModels[facts.Model]; ok {
		flags.LegacyAudioRealtek = true
		flags.RequiresKernelCollection = true
		return
	}
	if _, ok := nonGOPAudioModels[facts.Model]; ok && !facts.Environment.AudioShimLoaded {
		flags.LegacyAudioNonGOP = true
		flags.RequiresKernelCollection = true
	}
}

// detectGMUX applies only to demuxed boards: the integrated unit is
// wired to the panel and the discrete unit has been cut off.
func (d Detector) detectGMUX(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if _, ok := legacyGMUXModels[facts.Model]; !ok {
		return
	}
	if !facts.OSVersion.After(types.VersionHighSierra) {
		return
	}
	demuxed := false
	for _, gpu := range facts.GPUs {
		if gpu.Integrated && !gpu.Disabled {
			demuxed = true
		}
		if !gpu.Integrated && !gpu.Disabled {
			return
		}
	}
	if demuxed {
		flags.LegacyGMUX = true
		flags.RequiresKernelCollection = true
	}
}

// detectUSB raises the USB 1.1 shim where the OS dropped the UHCI and
// OHCI drivers and the board has no XHCI controller to fall back on.
func (d Detector) detectUSB(flags *types.CapabilityFlags, facts types.HardwareFacts) {
	if facts.OSVersion.Before(types.VersionVentura) {
		return
	}
	for _, controller := range facts.USBControllers {
		if controller == types.USBControllerXHCI {
			return
		}
	}
	if facts.Hackintosh {
		// Outside real Macs the board database says nothing; trust the
		// enumerated controllers instead.
		found := false
		for _, controller := range facts.USBControllers {
			if controller == types.USBControllerUHCI || controller == types.USBControllerOHCI {
				found = true
			}
		}
		if !found {
			return
		}
	} else {
		_, tower := legacyUSBTowerModels[facts.Model]
		if !facts.CPUGeneration.PenrynOrOlder() && !tower {
			return
		}
	}
	flags.LegacyUSB11 = true
	flags.RequiresKernelCollection = true
}
