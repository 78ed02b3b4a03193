// Package catalog ships the builtin patch table: every named bundle of
// compatibility operations the resolver can schedule, with its support
// window and payload. The table is frozen at first use and treated as
// read-only for the process lifetime.
package catalog

import (
	"sync"

	"rootpatch/internal/types"
)

const (
	extensions = "/System/Library/Extensions"
	frameworks = "/System/Library/Frameworks"
	privFrameworks = "/System/Library/PrivateFrameworks"
	coreServices   = "/System/Library/CoreServices"
)

var (
	once    sync.Once
	builtin types.Catalog
)

// Builtin returns the frozen builtin catalog. The first call constructs
// it; later calls and concurrent callers share the same value.
func Builtin() types.Catalog {
	once.Do(func() {
		frozen, ok := types.NewCatalog(entries())
		if !ok {
			// Duplicate names in the builtin table are a programming
			// error caught by the package tests; never ship them.
			panic("builtin catalog contains duplicate entry names")
		}
		builtin = frozen
	})
	return builtin
}

func window(minMajor, minMinor, maxMajor, maxMinor int) types.OSRange {
	return types.OSRange{
		Min: types.Version{Major: minMajor, Minor: minMinor},
		Max: types.Version{Major: maxMajor, Minor: maxMinor},
	}
}

func entries() []types.PatchEntry {
	return []types.PatchEntry{
		// Shared graphics runtimes.
		{
			Name:        "Non-Metal Common",
			DisplayName: "Shared software-rendering runtime",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks:     {"OpenGL.framework", "CoreDisplay.framework"},
					privFrameworks: {"GPUSupport.framework", "SkyLight.framework"},
				},
			},
		},
		{
			Name:        "Non-Metal IOAccelerator Common",
			DisplayName: "Legacy IOAccelerator downgrade",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions:     {"IOAcceleratorFamily2.kext"},
					privFrameworks: {"IOAccelerator.framework"},
				},
			},
		},
		{
			Name:        "Non-Metal CoreDisplay Common",
			DisplayName: "Legacy CoreDisplay downgrade",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"CoreDisplay.framework"},
				},
			},
		},
		{
			Name:        "Non-Metal ColorSync Workaround",
			DisplayName: "ColorSync profile workaround",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"ColorSync.framework"},
				},
			},
		},
		{
			Name:        "Non-Metal Enforcement",
			DisplayName: "Software-rendering enforcement shims",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					coreServices: {"WindowServer.shims"},
				},
			},
		},
		{
			Name:        "WebKit Monterey Common",
			DisplayName: "WebKit compositing fallback",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"WebKit.framework"},
				},
			},
		},
		{
			Name:        "Metal 3802 Common",
			DisplayName: "Metal 3802 compiler runtime",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					privFrameworks: {"MTLCompiler.framework", "GPUCompiler.framework"},
				},
			},
		},
		{
			Name:        "Revert Metal Downgrade",
			DisplayName: "Restore current Metal baseline",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Remove: map[string][]string{
					privFrameworks: {"MTLCompiler.framework.patched"},
				},
			},
		},

		// Video decode alternatives; exactly one survives per plan.
		{
			Name:             "High Sierra GVA",
			DisplayName:      "High Sierra video decode stack",
			Support:          window(20, 0, 23, 99),
			AlternativeGroup: "gva",
			Operations: types.Operations{
				Install: map[string][]string{
					privFrameworks: {"AppleGVA.framework"},
				},
			},
		},
		{
			Name:             "Catalina GVA",
			DisplayName:      "Catalina video decode stack",
			Support:          window(20, 0, 22, 99),
			AlternativeGroup: "gva",
			Operations: types.Operations{
				Install: map[string][]string{
					privFrameworks: {"AppleGVA.framework", "AppleGVACore.framework"},
				},
			},
		},
		{
			Name:             "Monterey GVA",
			DisplayName:      "Monterey video decode stack",
			Support:          window(22, 0, 23, 99),
			AlternativeGroup: "gva",
			Operations: types.Operations{
				Install: map[string][]string{
					privFrameworks: {"AppleGVA.framework", "AppleGVACore.framework"},
				},
			},
		},
		{
			Name:        "Monterey OpenCL",
			DisplayName: "Monterey OpenCL downgrade",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"OpenCL.framework"},
				},
			},
		},
		{
			Name:        "Big Sur OpenCL",
			DisplayName: "Big Sur OpenCL downgrade",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"OpenCL.framework.bigsur"},
				},
			},
		},

		// Family-specific driver shims.
		{
			Name:        "Intel Ironlake",
			DisplayName: "Intel Ironlake graphics",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelHDGraphics.kext", "AppleIntelHDGraphicsFB.kext"},
				},
			},
		},
		{
			Name:        "Intel Sandy Bridge",
			DisplayName: "Intel Sandy Bridge graphics",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelHD3000Graphics.kext", "AppleIntelSNBGraphicsFB.kext"},
				},
			},
		},
		{
			Name:        "Intel Ivy Bridge",
			DisplayName: "Intel Ivy Bridge graphics",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelHD4000Graphics.kext", "AppleIntelFramebufferCapri.kext"},
				},
			},
		},
		{
			Name:        "Intel Haswell",
			DisplayName: "Intel Haswell graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelHD5000Graphics.kext", "AppleIntelFramebufferAzul.kext"},
				},
			},
		},
		{
			Name:        "Intel Broadwell",
			DisplayName: "Intel Broadwell graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelBDWGraphics.kext", "AppleIntelBDWGraphicsFramebuffer.kext"},
				},
			},
		},
		{
			Name:        "Intel Skylake",
			DisplayName: "Intel Skylake graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleIntelSKLGraphics.kext", "AppleIntelSKLGraphicsFramebuffer.kext"},
				},
			},
		},
		{
			Name:        "Nvidia Tesla",
			DisplayName: "Nvidia Tesla graphics",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"NVDAResmanTesla.kext", "GeForceTesla.kext"},
				},
			},
		},
		{
			Name:        "Nvidia Kepler",
			DisplayName: "Nvidia Kepler graphics",
			Support:     window(21, 1, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"GeForce.kext", "NVDAStartup.kext"},
				},
			},
		},
		{
			Name:        "Nvidia Web Drivers",
			DisplayName: "Nvidia web drivers",
			Support:     window(20, 0, 22, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"NVDAStartupWeb.kext", "GeForceWeb.kext"},
				},
			},
		},
		{
			Name:        "AMD TeraScale Common",
			DisplayName: "AMD TeraScale shared runtime",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMDShared.bundle"},
				},
			},
		},
		{
			Name:        "AMD TeraScale 1",
			DisplayName: "AMD TeraScale 1 graphics",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMD2400Controller.kext", "AMDRadeonX2000.kext"},
				},
			},
		},
		{
			Name:        "AMD TeraScale 2",
			DisplayName: "AMD TeraScale 2 graphics",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMD5000Controller.kext", "AMD6000Controller.kext"},
				},
			},
			Optional: []types.OptionalComponent{
				{
					Name:    "AMDRadeonX3000.kext",
					Target:  extensions,
					Window:  window(20, 0, 22, 99),
					OptIn:   true,
					Comment: "accelerator panics on boards without the GPU rework",
				},
			},
		},
		{
			Name:        "AMD Legacy GCN",
			DisplayName: "AMD legacy GCN graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMDRadeonX4000.kext", "AMD9500Controller.kext"},
				},
			},
		},
		{
			Name:        "AMD Legacy Polaris",
			DisplayName: "AMD legacy Polaris graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMDRadeonX4000.kext", "AMD9510Controller.kext"},
				},
			},
		},
		{
			Name:        "AMD Legacy Vega",
			DisplayName: "AMD legacy Vega graphics",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMDRadeonX5000.kext"},
				},
			},
		},
		{
			Name:        "AMD Legacy Vega Extended",
			DisplayName: "AMD Vega alongside GCN",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AMDRadeonX5000HWLibs.kext"},
				},
			},
		},
		{
			Name:        "AMD OpenCL",
			DisplayName: "AMD OpenCL compatibility",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					frameworks: {"OpenCL.framework.amd"},
				},
			},
		},

		// Non-graphics shims.
		{
			Name:        "Legacy Backlight Control",
			DisplayName: "Legacy display backlight control",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleBacklight.kext", "AppleBacklightExpert.kext"},
				},
			},
		},
		{
			Name:        "Legacy Realtek",
			DisplayName: "Legacy Realtek audio",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleHDA.kext", "IOAudioFamily.kext"},
				},
			},
		},
		{
			Name:        "Legacy Non-GOP",
			DisplayName: "Legacy audio for pre-GOP boards",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleHDA.kext"},
				},
			},
		},
		{
			Name:        "Legacy Wireless",
			DisplayName: "Legacy wireless networking",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions:     {"IO80211Family.kext"},
					privFrameworks: {"CoreWLAN.framework"},
				},
			},
		},
		{
			Name:        "Legacy Wireless Extended",
			DisplayName: "Legacy wireless support daemons",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					privFrameworks: {"IO80211.framework", "WiFiPolicy.framework"},
				},
			},
		},
		{
			Name:        "Legacy Bluetooth",
			DisplayName: "Legacy bluetooth hubs",
			Support:     window(21, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"IOBluetoothFamily.kext", "BlueToolFixup.kext"},
				},
			},
		},
		{
			Name:        "Legacy GMUX",
			DisplayName: "Legacy graphics multiplexer control",
			Support:     window(18, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleMuxControl.kext"},
				},
			},
		},
		{
			Name:        "Legacy Keyboard Backlight",
			DisplayName: "Legacy keyboard backlight control",
			Support:     window(20, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					coreServices: {"KeyboardBacklightAgent.app"},
				},
			},
		},
		{
			Name:        "Legacy USB 1.1",
			DisplayName: "USB 1.1 host controllers",
			Support:     window(22, 0, 23, 99),
			Operations: types.Operations{
				Install: map[string][]string{
					extensions: {"AppleUSBUHCI.kext", "AppleUSBOHCI.kext"},
				},
			},
		},
	}
}
