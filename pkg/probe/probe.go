// Package probe reads hardware and kernel facts from /proc and from
// read-only diagnostic commands. Every probe degrades to a safe default.
package probe

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// VendorUnknown is reported when the CPU vendor cannot be read.
const VendorUnknown = "Unknown"

// Known CPU vendor IDs as reported by /proc/cpuinfo.
const (
	VendorIntel = "GenuineIntel"
	VendorAMD   = "AuthenticAMD"
)

// Defaults for Options.
const (
	DefaultProcRoot      = "/proc"
	DefaultGPUBusAddress = "01:00.0"
	DefaultGPUClass      = "VGA compatible controller"
	DefaultGPUVendor     = "nvidia"
	DefaultDriverLabel   = "Kernel driver in use:"
)

// gpuClassRe selects display devices in `lspci -k` output.
var gpuClassRe = regexp.MustCompile(`VGA|3D|Display`)

// driverContextLines is how many lines after a display device line may
// carry its kernel driver.
const driverContextLines = 3

// Options tunes the environment-specific heuristics used by the probes.
type Options struct {
	ProcRoot      string `koanf:"proc_root"`       // Directory holding cpuinfo and cmdline
	GPUBusAddress string `koanf:"gpu_bus_address"` // PCI address of the discrete GPU slot
	GPUClass      string `koanf:"gpu_class"`       // lspci class label of the GPU line
	GPUVendor     string `koanf:"gpu_vendor"`      // Case-insensitive vendor filter, empty for any
	DriverLabel   string `koanf:"driver_label"`    // Prefix of the driver line in `lspci -k`
}

// DefaultOptions returns the stock probe options.
func DefaultOptions() Options {
	return Options{
		ProcRoot:      DefaultProcRoot,
		GPUBusAddress: DefaultGPUBusAddress,
		GPUClass:      DefaultGPUClass,
		GPUVendor:     DefaultGPUVendor,
		DriverLabel:   DefaultDriverLabel,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ProcRoot == "" {
		o.ProcRoot = d.ProcRoot
	}
	if o.GPUBusAddress == "" {
		o.GPUBusAddress = d.GPUBusAddress
	}
	if o.GPUClass == "" {
		o.GPUClass = d.GPUClass
	}
	if o.DriverLabel == "" {
		o.DriverLabel = d.DriverLabel
	}
	return o
}

// Prober runs the hardware probes.
type Prober struct {
	runner   runner.Runner
	opts     Options
	log      zerolog.Logger
	hostInfo hostInfoFunc
}

// New creates a Prober. Zero-valued option fields fall back to the defaults,
// except GPUVendor where empty means "any vendor".
func New(r runner.Runner, opts Options, log zerolog.Logger) *Prober {
	return &Prober{
		runner:   r,
		opts:     opts.withDefaults(),
		log:      log,
		hostInfo: defaultHostInfo,
	}
}

// Options returns the effective options.
func (p *Prober) Options() Options {
	return p.opts
}

// CPUVendor returns the first vendor_id in cpuinfo, or VendorUnknown.
func (p *Prober) CPUVendor() string {
	path := filepath.Join(p.opts.ProcRoot, "cpuinfo")
	f, err := os.Open(path)
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to detect CPU type")
		return VendorUnknown
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "vendor_id") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if vendor := strings.TrimSpace(parts[1]); vendor != "" {
			return vendor
		}
	}
	if err := scanner.Err(); err != nil {
		p.log.Warn().Err(err).Msg("Failed to read cpuinfo")
	}

	return VendorUnknown
}

// GPUList returns descriptions of GPUs in the discrete slot that match the
// vendor filter. It never returns nil.
func (p *Prober) GPUList(ctx context.Context) []string {
	gpus := []string{}

	res, err := p.runner.Run(ctx, runner.Command("lspci").WithEnv("LANG=C"))
	if err != nil {
		if runner.IsExitError(err) {
			p.log.Debug().Msg("No GPU detected")
		} else {
			p.log.Warn().Err(err).Msg("An unexpected error occurred while detecting GPU")
		}
		return gpus
	}

	prefix := p.opts.GPUBusAddress + " " + p.opts.GPUClass
	vendor := strings.ToLower(p.opts.GPUVendor)

	for _, line := range res.Lines() {
		line = strings.TrimSpace(line)
		if vendor != "" && !strings.Contains(strings.ToLower(line), vendor) {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		desc := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		desc = strings.TrimSpace(strings.TrimPrefix(desc, ":"))
		if desc != "" {
			gpus = append(gpus, desc)
		}
	}

	if len(gpus) == 0 {
		p.log.Debug().Msg("No GPU information found")
	}
	return gpus
}

// GPUDrivers returns the kernel drivers bound to display devices. The
// result is independent of GPUList and never nil.
func (p *Prober) GPUDrivers(ctx context.Context) []string {
	drivers := []string{}

	res, err := p.runner.Run(ctx, runner.Command("lspci", "-k").WithEnv("LANG=C"))
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to get GPU drivers")
		return drivers
	}

	remaining := 0
	for _, line := range res.Lines() {
		if gpuClassRe.MatchString(line) {
			remaining = driverContextLines + 1
		}
		if remaining == 0 {
			continue
		}
		remaining--

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, p.opts.DriverLabel) {
			continue
		}
		if name := strings.TrimSpace(strings.TrimPrefix(trimmed, p.opts.DriverLabel)); name != "" {
			drivers = append(drivers, name)
		}
	}

	return drivers
}

// BootParam looks up a kernel command line parameter. A "name=value" token
// yields value, a bare "name" token yields name, otherwise def.
func (p *Prober) BootParam(name, def string) string {
	data, err := os.ReadFile(filepath.Join(p.opts.ProcRoot, "cmdline"))
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to read kernel boot mode")
		return def
	}
	return ParseBootParam(string(data), name, def)
}

// ParseBootParam applies the BootParam rules to a command line string.
func ParseBootParam(cmdline, name, def string) string {
	for _, token := range strings.Fields(cmdline) {
		if value, ok := strings.CutPrefix(token, name+"="); ok {
			return value
		}
		if token == name {
			return name
		}
	}
	return def
}
