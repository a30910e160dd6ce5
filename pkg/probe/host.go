package probe

import (
	"context"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/host"
)

// HostSummary is a diagnostic snapshot of the machine running the installer.
type HostSummary struct {
	Platform        string `yaml:"platform,omitempty"`
	PlatformVersion string `yaml:"platform_version,omitempty"`
	KernelVersion   string `yaml:"kernel_version,omitempty"`
	KernelArch      string `yaml:"kernel_arch,omitempty"`
	Virtualization  string `yaml:"virtualization,omitempty"`
	CPUIDVendor     string `yaml:"cpuid_vendor,omitempty"`
}

// Map renders the summary for the decision store.
func (h HostSummary) Map() map[string]any {
	return map[string]any{
		"platform":         h.Platform,
		"platform_version": h.PlatformVersion,
		"kernel_version":   h.KernelVersion,
		"kernel_arch":      h.KernelArch,
		"virtualization":   h.Virtualization,
		"cpuid_vendor":     h.CPUIDVendor,
	}
}

type hostInfoFunc func(ctx context.Context) (*host.InfoStat, error)

func defaultHostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

// HostSummary collects kernel and platform details. Missing details are
// left empty; the CPUID vendor comes straight from the CPU and can differ
// from cpuinfo inside some virtual machines.
func (p *Prober) HostSummary(ctx context.Context) HostSummary {
	summary := HostSummary{CPUIDVendor: cpuid.CPU.VendorString}

	info, err := p.hostInfo(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("Failed to read host information")
		return summary
	}

	summary.Platform = info.Platform
	summary.PlatformVersion = info.PlatformVersion
	summary.KernelVersion = info.KernelVersion
	summary.KernelArch = info.KernelArch
	if info.VirtualizationRole == "guest" {
		summary.Virtualization = info.VirtualizationSystem
	}
	return summary
}
