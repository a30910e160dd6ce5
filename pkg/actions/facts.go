package actions

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// ErrNoRoot is returned when the store has no target root mount point.
var ErrNoRoot = errors.New("no install path specified")

// Facts are the store values the package actions consume. Optional facts
// that are absent or malformed are left empty.
type Facts struct {
	Root      string
	CPUVendor string
	BootMode  string
	Firmware  string
	GPUs      []string
	Selected  []string
	ZFSPools  []map[string]any

	// ZFSPoolsUnreadable is set when zfsPoolInfo is present but malformed.
	// Pools may exist, so the ZFS tooling must stay.
	ZFSPoolsUnreadable bool
}

// ReadFacts reads Facts from s. Only a missing or empty root is an error;
// other schema problems are logged and the fact is treated as absent.
func ReadFacts(s *store.Store, log zerolog.Logger) (Facts, error) {
	root, err := s.String(store.KeyRootMountPoint)
	if err != nil || strings.TrimSpace(root) == "" {
		return Facts{}, ErrNoRoot
	}

	f := Facts{Root: root}
	f.CPUVendor = optional(log, store.KeyCPUVendor, s.String)
	f.BootMode = optional(log, store.KeyKernelBootMode, s.String)
	f.Firmware = optional(log, store.KeyFirmwareType, s.String)
	f.GPUs = optional(log, store.KeyNvidiaGPUName, s.StringList)
	f.Selected = optional(log, store.KeyPackageChooser, s.StringList)

	pools, err := s.MapList(store.KeyZFSPoolInfo)
	if err != nil && !store.IsMissing(err) {
		log.Warn().Err(err).Str("key", store.KeyZFSPoolInfo).Msg("Keeping ZFS tooling, pool info unreadable")
		f.ZFSPoolsUnreadable = true
	}
	f.ZFSPools = pools
	return f, nil
}

func optional[T any](log zerolog.Logger, key string, get func(string) (T, error)) T {
	v, err := get(key)
	if err != nil && !store.IsMissing(err) {
		log.Warn().Err(err).Str("key", key).Msg("Ignoring malformed store value")
	}
	return v
}
