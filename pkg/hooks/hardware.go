package hooks

import (
	"context"
	"fmt"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// Hardware probes the machine and records CPU, GPU and boot facts.
func Hardware(ctx context.Context, d Deps) error {
	log := d.Log

	gpus := d.Prober.GPUList(ctx)
	drivers := d.Prober.GPUDrivers(ctx)
	bootMode := d.Prober.BootParam("driver", "free")
	vendor := d.Prober.CPUVendor()
	summary := d.Prober.HostSummary(ctx)

	log.Debug().Strs("gpus", gpus).Msg("GPU detected")
	log.Debug().Strs("drivers", drivers).Msg("GPU drivers in use")
	log.Debug().Str("boot_mode", bootMode).Msg("Kernel boot mode")
	log.Debug().Str("vendor", vendor).Msg("CPU vendor")
	log.Debug().Str("kernel", summary.KernelVersion).Str("platform", summary.Platform).Msg("Host summary")

	facts := []struct {
		key   string
		value any
	}{
		{store.KeyNvidiaGPUName, gpus},
		{store.KeyGPUDrivers, drivers},
		{store.KeyKernelBootMode, bootMode},
		{store.KeyCPUVendor, vendor},
		{store.KeyHostSummary, summary.Map()},
	}
	for _, f := range facts {
		if err := d.Store.Insert(f.key, f.value); err != nil {
			log.Warn().Err(err).Str("key", f.key).Msg("Not storing invalid fact")
		}
	}

	if err := save(d.Store); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	return nil
}
