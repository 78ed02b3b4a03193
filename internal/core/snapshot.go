package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rootpatch/internal/types"
)

var validGPUArchs = map[types.GPUArch]struct{}{
	types.GPUArchNvidiaTesla:      {},
	types.GPUArchNvidiaFermi:      {},
	types.GPUArchNvidiaKepler:     {},
	types.GPUArchNvidiaMaxwell:    {},
	types.GPUArchNvidiaPascal:     {},
	types.GPUArchAMDTeraScale1:    {},
	types.GPUArchAMDTeraScale2:    {},
	types.GPUArchAMDGCN:           {},
	types.GPUArchAMDPolaris:       {},
	types.GPUArchAMDVega:          {},
	types.GPUArchIntelIronLake:    {},
	types.GPUArchIntelSandyBridge: {},
	types.GPUArchIntelIvyBridge:   {},
	types.GPUArchIntelHaswell:     {},
	types.GPUArchIntelBroadwell:   {},
	types.GPUArchIntelSkylake:     {},
	types.GPUArchModern:           {},
}

var validWireless = map[types.WirelessChipset]struct{}{
	types.WirelessNone:          {},
	types.WirelessModern:        {},
	types.WirelessBroadcom4331:  {},
	types.WirelessBroadcom43224: {},
	types.WirelessAtheros40:     {},
}

var validBluetooth = map[types.BluetoothChipset]struct{}{
	types.BluetoothNone:        {},
	types.BluetoothModern:      {},
	types.BluetoothBRCM2046Hub: {},
	types.BluetoothBRCM2070Hub: {},
}

var validUSBControllers = map[types.USBControllerKind]struct{}{
	types.USBControllerUHCI: {},
	types.USBControllerOHCI: {},
	types.USBControllerEHCI: {},
	types.USBControllerXHCI: {},
}

// ValidateSnapshot rejects malformed probe documents before they reach
// the detector. Every enum value must be a member of its closed set;
// skipping bad input would turn a probe bug into a silent no-patch run.
func ValidateSnapshot(ctx context.Context, snapshot types.ProbeSnapshot) error {
	facts := snapshot.Facts
	assert.NotEmpty(ctx, facts.Model, "facts.model must be set")
	if err := ValidateVersion(facts.OSVersion); err != nil {
		return err
	}
	for i, gpu := range facts.GPUs {
		if _, ok := validGPUArchs[gpu.Arch]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("gpus[%d] has unknown architecture: %s", i, gpu.Arch))
		}
	}
	if _, ok := validWireless[facts.Wireless]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown wireless chipset: %s", facts.Wireless))
	}
	if _, ok := validBluetooth[facts.Bluetooth]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown bluetooth chipset: %s", facts.Bluetooth))
	}
	for i, controller := range facts.USBControllers {
		if _, ok := validUSBControllers[controller]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("usb_controllers[%d] has unknown kind: %s", i, controller))
		}
	}
	log.Ctx(ctx).Debug().Str("model", facts.Model).Msg("probe snapshot validated")
	return nil
}
