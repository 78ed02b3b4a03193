package types

// GPUArch is the closed set of graphics architectures the detector
// understands. Adding a family means extending the switch in the
// detector; unknown tags are rejected rather than skipped.
type GPUArch string

const (
	GPUArchNvidiaTesla   GPUArch = "nvidia-tesla"
	GPUArchNvidiaFermi   GPUArch = "nvidia-fermi"
	GPUArchNvidiaKepler  GPUArch = "nvidia-kepler"
	GPUArchNvidiaMaxwell GPUArch = "nvidia-maxwell"
	GPUArchNvidiaPascal  GPUArch = "nvidia-pascal"

	GPUArchAMDTeraScale1 GPUArch = "amd-terascale-1"
	GPUArchAMDTeraScale2 GPUArch = "amd-terascale-2"
	GPUArchAMDGCN        GPUArch = "amd-gcn"
	GPUArchAMDPolaris    GPUArch = "amd-polaris"
	GPUArchAMDVega       GPUArch = "amd-vega"

	GPUArchIntelIronLake    GPUArch = "intel-ironlake"
	GPUArchIntelSandyBridge GPUArch = "intel-sandy-bridge"
	GPUArchIntelIvyBridge   GPUArch = "intel-ivy-bridge"
	GPUArchIntelHaswell     GPUArch = "intel-haswell"
	GPUArchIntelBroadwell   GPUArch = "intel-broadwell"
	GPUArchIntelSkylake     GPUArch = "intel-skylake"

	// GPUArchModern marks a unit that runs natively on current releases
	// and never raises a capability flag.
	GPUArchModern GPUArch = "modern"
)

// WirelessChipset identifies the wireless unit, if any.
type WirelessChipset string

const (
	WirelessNone          WirelessChipset = ""
	WirelessModern        WirelessChipset = "modern"
	WirelessBroadcom4331  WirelessChipset = "broadcom-4331"
	WirelessBroadcom43224 WirelessChipset = "broadcom-43224"
	WirelessAtheros40     WirelessChipset = "atheros-40"
)

// Legacy reports whether the chipset lost native driver support.
func (w WirelessChipset) Legacy() bool {
	switch w {
	case WirelessBroadcom4331, WirelessBroadcom43224, WirelessAtheros40:
		return true
	default:
		return false
	}
}

// BluetoothChipset identifies the bluetooth unit, if any.
type BluetoothChipset string

const (
	BluetoothNone        BluetoothChipset = ""
	BluetoothModern      BluetoothChipset = "modern"
	BluetoothBRCM2046Hub BluetoothChipset = "brcm2046-hub"
	BluetoothBRCM2070Hub BluetoothChipset = "brcm2070-hub"
)

func (b BluetoothChipset) Legacy() bool {
	return b == BluetoothBRCM2046Hub || b == BluetoothBRCM2070Hub
}

// USBControllerKind is a host controller interface generation.
type USBControllerKind string

const (
	USBControllerUHCI USBControllerKind = "uhci"
	USBControllerOHCI USBControllerKind = "ohci"
	USBControllerEHCI USBControllerKind = "ehci"
	USBControllerXHCI USBControllerKind = "xhci"
)

// CPUGeneration tags the host CPU family. Only the ordering relative to
// Penryn matters to the detector; Penryn and older lack the internal USB
// hub that later boards ship.
type CPUGeneration string

const (
	CPUGenerationUnknown     CPUGeneration = ""
	CPUGenerationConroe      CPUGeneration = "conroe"
	CPUGenerationPenryn      CPUGeneration = "penryn"
	CPUGenerationNehalem     CPUGeneration = "nehalem"
	CPUGenerationWestmere    CPUGeneration = "westmere"
	CPUGenerationSandyBridge CPUGeneration = "sandy-bridge"
	CPUGenerationIvyBridge   CPUGeneration = "ivy-bridge"
	CPUGenerationHaswell     CPUGeneration = "haswell"
	CPUGenerationBroadwell   CPUGeneration = "broadwell"
	CPUGenerationSkylake     CPUGeneration = "skylake"
)

var cpuGenerationRank = map[CPUGeneration]int{
	CPUGenerationConroe:      1,
	CPUGenerationPenryn:      2,
	CPUGenerationNehalem:     3,
	CPUGenerationWestmere:    4,
	CPUGenerationSandyBridge: 5,
	CPUGenerationIvyBridge:   6,
	CPUGenerationHaswell:     7,
	CPUGenerationBroadwell:   8,
	CPUGenerationSkylake:     9,
}

// PenrynOrOlder reports whether the generation predates the internal USB
// hub introduced after Penryn. Unknown generations report false.
func (g CPUGeneration) PenrynOrOlder() bool {
	rank, ok := cpuGenerationRank[g]
	if !ok {
		return false
	}
	return rank <= cpuGenerationRank[CPUGenerationPenryn]
}
