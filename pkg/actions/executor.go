package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/pacman"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/probe"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// Action names as they appear in reports.
const (
	ActionDBLock       = "db-lock"
	ActionMicrocode    = "microcode"
	ActionFirmware     = "firmware"
	ActionDrivers      = "drivers"
	ActionNvidiaSelect = "nvidia-select"
	ActionLiveCleanup  = "live-cleanup"
	ActionZFSCleanup   = "zfs-cleanup"
	ActionSelection    = "selection"
)

const dbLockPath = "var/lib/pacman/db.lck"

// Executor runs the package actions against one target root.
type Executor struct {
	host   runner.Runner
	opts   Options
	root   string
	pacman *pacman.Manager
	log    zerolog.Logger
}

// New creates an Executor. Package operations run on host through the
// configured chroot command.
func New(host runner.Runner, root string, opts Options, log zerolog.Logger) *Executor {
	return &Executor{
		host:   host,
		opts:   opts,
		root:   root,
		pacman: pacman.New(runner.NewChroot(host, opts.Chroot, root)),
		log:    log,
	}
}

// Run performs every package action in order and reports each outcome to
// onEvent.
func (e *Executor) Run(ctx context.Context, f Facts, onEvent Callback) {
	plan := NewPlan(e.log, onEvent)

	plan.Run(ctx, ActionDBLock, e.RemoveDBLock)
	plan.Run(ctx, ActionMicrocode, func(ctx context.Context) error {
		return e.RemoveMicrocode(ctx, f.CPUVendor)
	})
	plan.Run(ctx, ActionFirmware, func(ctx context.Context) error {
		return e.CleanupFirmware(ctx, f.Firmware)
	})
	plan.Run(ctx, ActionDrivers, func(ctx context.Context) error {
		return e.ResolveDrivers(ctx, f.BootMode)
	})
	plan.Run(ctx, ActionNvidiaSelect, func(ctx context.Context) error {
		return e.SelectNvidia(ctx, f.BootMode, f.GPUs)
	})
	plan.Run(ctx, ActionLiveCleanup, e.CleanupLive)
	plan.Run(ctx, ActionZFSCleanup, func(ctx context.Context) error {
		if f.ZFSPoolsUnreadable {
			return Skip("zfsPoolInfo unreadable")
		}
		return e.CleanupZFS(ctx, f.ZFSPools)
	})
	plan.Run(ctx, ActionSelection, func(ctx context.Context) error {
		return e.InstallSelection(ctx, f.Selected)
	})
}

// RemoveDBLock deletes a stale pacman lock in the target root.
func (e *Executor) RemoveDBLock(ctx context.Context) error {
	lock := filepath.Join(e.root, dbLockPath)
	if _, err := os.Stat(lock); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Skip("no database lock")
		}
		return fmt.Errorf("failed to check database lock: %w", err)
	}

	if e.opts.Escalate == "" {
		if err := os.Remove(lock); err != nil {
			return fmt.Errorf("failed to remove database lock: %w", err)
		}
		return nil
	}

	r := runner.NewEscalated(e.host, e.opts.Escalate)
	if _, err := r.Run(ctx, runner.Command("rm", "-f", lock)); err != nil {
		return fmt.Errorf("failed to remove database lock: %w", err)
	}
	return nil
}

// RemoveMicrocode removes the microcode package of the other CPU vendor.
func (e *Executor) RemoveMicrocode(ctx context.Context, vendor string) error {
	switch {
	case vendor == "":
		e.log.Warn().Msg("CPU vendor information not found")
		return Skip("no CPU vendor")
	case strings.Contains(vendor, probe.VendorIntel):
		return e.pacman.Remove(ctx, "amd-ucode")
	case strings.Contains(vendor, probe.VendorAMD):
		return e.pacman.Remove(ctx, "intel-ucode")
	default:
		return Skip("unknown CPU vendor " + vendor)
	}
}

// CleanupFirmware removes the packages of the unused boot path.
func (e *Executor) CleanupFirmware(ctx context.Context, firmware string) error {
	var pkgs []string
	switch firmware {
	case "bios":
		pkgs = e.opts.EFIPackages
	case "efi":
		pkgs = e.opts.BIOSPackages
	default:
		return Skip("unknown firmware type")
	}
	if len(pkgs) == 0 {
		return Skip("nothing to remove for " + firmware)
	}
	return e.pacman.Remove(ctx, pkgs...)
}

// ResolveDrivers removes the proprietary NVIDIA stack on free boots and
// blacklists nouveau on nonfree boots.
func (e *Executor) ResolveDrivers(ctx context.Context, mode string) error {
	switch mode {
	case "":
		e.log.Warn().Msg("No kernel boot mode found")
		return Skip("no kernel boot mode")
	case "free":
		return e.pacman.Remove(ctx, e.opts.FreeDriverPackages...)
	case "nonfree":
		return e.writeBlacklist()
	default:
		return Skip("unknown kernel boot mode " + mode)
	}
}

func (e *Executor) writeBlacklist() error {
	path := filepath.Join(e.root, e.opts.BlacklistFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create modprobe directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(e.opts.BlacklistContent), 0644); err != nil {
		return fmt.Errorf("failed to blacklist nouveau: %w", err)
	}
	e.log.Debug().Str("path", path).Msg("Nouveau driver blacklisted")
	return nil
}

// NvidiaPackageFor returns the driver package for the first supported GPU,
// or an empty string.
func (e *Executor) NvidiaPackageFor(gpus []string) string {
	for _, gpu := range gpus {
		if !strings.Contains(gpu, "NVIDIA") {
			continue
		}
		if containsAny(gpu, e.opts.NvidiaOpenModels) {
			return e.opts.NvidiaOpenPackage
		}
		if containsAny(gpu, e.opts.NvidiaModels) {
			return e.opts.NvidiaPackage
		}
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// SelectNvidia installs the driver package matching the detected GPU on
// nonfree boots. Disabled unless Options.NvidiaSelect is set.
func (e *Executor) SelectNvidia(ctx context.Context, mode string, gpus []string) error {
	if !e.opts.NvidiaSelect {
		return Skip("disabled")
	}
	if mode != "nonfree" {
		return Skip("free boot mode")
	}

	pkg := e.NvidiaPackageFor(gpus)
	if pkg == "" {
		return Skip("no supported NVIDIA GPU detected")
	}

	installed, err := e.pacman.IsInstalled(ctx, pkg)
	if err != nil {
		return err
	}
	if installed {
		return Skip(pkg + " already installed")
	}
	return e.pacman.Install(ctx, pkg)
}

// CleanupLive removes every live-only package in its own transaction so
// that one missing package does not keep the others installed.
func (e *Executor) CleanupLive(ctx context.Context) error {
	var errs []error
	for _, pkg := range e.opts.LivePackages {
		if err := e.pacman.Remove(ctx, pkg); err != nil {
			e.log.Warn().Err(err).Str("package", pkg).Msg("Could not remove package")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CleanupZFS removes the ZFS tooling when no pool was created.
func (e *Executor) CleanupZFS(ctx context.Context, pools []map[string]any) error {
	if len(pools) > 0 {
		return Skip("ZFS pools in use")
	}

	var installed []string
	for _, pkg := range e.opts.ZFSPackages {
		ok, err := e.pacman.IsInstalled(ctx, pkg)
		if err != nil {
			return err
		}
		if ok {
			installed = append(installed, pkg)
		}
	}
	if len(installed) == 0 {
		return Skip("no ZFS packages installed")
	}
	return e.pacman.Remove(ctx, installed...)
}

// InstallSelection installs the user's chosen packages in one call.
func (e *Executor) InstallSelection(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return Skip("no packages selected")
	}
	return e.pacman.Install(ctx, pkgs...)
}
