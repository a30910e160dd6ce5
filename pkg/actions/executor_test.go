package actions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner/runnertest"
)

// newExecutor returns an executor over a temp root that runs pacman
// without a chroot prefix.
func newExecutor(t *testing.T, fake *runnertest.Fake, mutate func(*Options)) (*Executor, string) {
	t.Helper()
	root := t.TempDir()
	opts := DefaultOptions()
	opts.Chroot = ""
	if mutate != nil {
		mutate(&opts)
	}
	return New(fake, root, opts, zerolog.Nop()), root
}

func remove(pkgs ...string) []string {
	return append([]string{"pacman", "-Rns", "--noconfirm"}, pkgs...)
}

func TestRemoveMicrocode(t *testing.T) {
	tests := []struct {
		name    string
		vendor  string
		want    [][]string
		skipped bool
	}{
		{"intel removes amd", "GenuineIntel", [][]string{remove("amd-ucode")}, false},
		{"amd removes intel", "AuthenticAMD", [][]string{remove("intel-ucode")}, false},
		{"substring match", "vendor GenuineIntel x", [][]string{remove("amd-ucode")}, false},
		{"unknown vendor", "Unknown", nil, true},
		{"other vendor", "CentaurHauls", nil, true},
		{"empty vendor", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &runnertest.Fake{}
			e, _ := newExecutor(t, fake, nil)

			err := e.RemoveMicrocode(context.Background(), tt.vendor)
			if tt.skipped {
				assert.True(t, IsSkip(err))
				assert.Empty(t, fake.Calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fake.Commands())
		})
	}
}

func TestRemoveMicrocode_Chroot(t *testing.T) {
	fake := &runnertest.Fake{}
	root := t.TempDir()
	e := New(fake, root, DefaultOptions(), zerolog.Nop())

	require.NoError(t, e.RemoveMicrocode(context.Background(), "AuthenticAMD"))
	assert.Equal(t, [][]string{{"chroot", root, "pacman", "-Rns", "--noconfirm", "intel-ucode"}}, fake.Commands())
}

func TestCleanupFirmware(t *testing.T) {
	t.Run("bios removes efi packages in one call", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		require.NoError(t, e.CleanupFirmware(context.Background(), "bios"))
		assert.Equal(t, [][]string{remove("efibootmgr", "refind-efi")}, fake.Commands())
	})

	t.Run("efi with no bios packages", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.CleanupFirmware(context.Background(), "efi")))
		assert.Empty(t, fake.Calls)
	})

	t.Run("efi with configured bios packages", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, func(o *Options) { o.BIOSPackages = []string{"grub-bios"} })

		require.NoError(t, e.CleanupFirmware(context.Background(), "efi"))
		assert.Equal(t, [][]string{remove("grub-bios")}, fake.Commands())
	})

	t.Run("missing firmware type", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.CleanupFirmware(context.Background(), "")))
		assert.Empty(t, fake.Calls)
	})
}

func TestResolveDrivers(t *testing.T) {
	t.Run("free removes proprietary stack", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, root := newExecutor(t, fake, nil)

		require.NoError(t, e.ResolveDrivers(context.Background(), "free"))
		assert.Equal(t, [][]string{remove("nvidia", "nvidia-utils", "nvidia-settings")}, fake.Commands())
		assert.NoFileExists(t, filepath.Join(root, "usr/lib/modprobe.d/nvidia-utils.conf"))
	})

	t.Run("nonfree blacklists nouveau in target", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, root := newExecutor(t, fake, nil)

		require.NoError(t, e.ResolveDrivers(context.Background(), "nonfree"))
		assert.Empty(t, fake.Calls)

		data, err := os.ReadFile(filepath.Join(root, "usr/lib/modprobe.d/nvidia-utils.conf"))
		require.NoError(t, err)
		assert.Equal(t, "blacklist nouveau\n", string(data))
	})

	t.Run("missing mode", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.ResolveDrivers(context.Background(), "")))
		assert.Empty(t, fake.Calls)
	})

	t.Run("remove failure", func(t *testing.T) {
		fake := &runnertest.Fake{RunFunc: runnertest.Exit(1)}
		e, _ := newExecutor(t, fake, nil)

		err := e.ResolveDrivers(context.Background(), "free")
		require.Error(t, err)
		assert.False(t, IsSkip(err))
	})
}

func TestRemoveDBLock(t *testing.T) {
	t.Run("no lock", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.RemoveDBLock(context.Background())))
		assert.Empty(t, fake.Calls)
	})

	t.Run("escalated removal", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, root := newExecutor(t, fake, nil)
		lock := filepath.Join(root, "var/lib/pacman/db.lck")
		require.NoError(t, os.MkdirAll(filepath.Dir(lock), 0755))
		require.NoError(t, os.WriteFile(lock, nil, 0644))

		require.NoError(t, e.RemoveDBLock(context.Background()))
		assert.Equal(t, [][]string{{"sudo", "rm", "-f", lock}}, fake.Commands())
	})

	t.Run("direct removal", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, root := newExecutor(t, fake, func(o *Options) { o.Escalate = "" })
		lock := filepath.Join(root, "var/lib/pacman/db.lck")
		require.NoError(t, os.MkdirAll(filepath.Dir(lock), 0755))
		require.NoError(t, os.WriteFile(lock, nil, 0644))

		require.NoError(t, e.RemoveDBLock(context.Background()))
		assert.Empty(t, fake.Calls)
		assert.NoFileExists(t, lock)
	})
}

func TestNvidiaPackageFor(t *testing.T) {
	e, _ := newExecutor(t, &runnertest.Fake{}, nil)

	assert.Equal(t, "nvidia-open", e.NvidiaPackageFor([]string{"NVIDIA Corporation GA104 [GeForce RTX 3070] (rev a1)"}))
	assert.Equal(t, "nvidia-open", e.NvidiaPackageFor([]string{"NVIDIA Corporation TU116 [GeForce GTX 1660 SUPER]"}))
	assert.Equal(t, "nvidia", e.NvidiaPackageFor([]string{"NVIDIA Corporation GP104 [GeForce GTX 1080]"}))
	assert.Empty(t, e.NvidiaPackageFor([]string{"NVIDIA Corporation GK208B [GeForce GT 710]"}))
	assert.Empty(t, e.NvidiaPackageFor([]string{"Advanced Micro Devices [GeForce RTX 3070]"}))
	assert.Empty(t, e.NvidiaPackageFor(nil))
}

func TestSelectNvidia(t *testing.T) {
	gpus := []string{"NVIDIA Corporation GA104 [GeForce RTX 3070] (rev a1)"}

	t.Run("disabled by default", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.SelectNvidia(context.Background(), "nonfree", gpus)))
		assert.Empty(t, fake.Calls)
	})

	t.Run("installs missing package", func(t *testing.T) {
		fake := &runnertest.Fake{RunFunc: runnertest.FailOn("-Q")}
		e, _ := newExecutor(t, fake, func(o *Options) { o.NvidiaSelect = true })

		require.NoError(t, e.SelectNvidia(context.Background(), "nonfree", gpus))
		assert.Equal(t, [][]string{
			{"pacman", "-Q", "nvidia-open"},
			{"pacman", "-S", "--noconfirm", "nvidia-open"},
		}, fake.Commands())
	})

	t.Run("already installed", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, func(o *Options) { o.NvidiaSelect = true })

		assert.True(t, IsSkip(e.SelectNvidia(context.Background(), "nonfree", gpus)))
		assert.Len(t, fake.Calls, 1)
	})

	t.Run("free boot", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, func(o *Options) { o.NvidiaSelect = true })

		assert.True(t, IsSkip(e.SelectNvidia(context.Background(), "free", gpus)))
		assert.Empty(t, fake.Calls)
	})
}

func TestCleanupLive_AttemptsEveryPackage(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("calamares", "hwinfo")}
	e, _ := newExecutor(t, fake, nil)

	err := e.CleanupLive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calamares")
	assert.Contains(t, err.Error(), "hwinfo")

	opts := DefaultOptions()
	require.Len(t, fake.Calls, len(opts.LivePackages))
	for i, pkg := range opts.LivePackages {
		assert.Equal(t, remove(pkg), fake.Calls[i].Argv())
	}
}

func TestCleanupZFS(t *testing.T) {
	t.Run("no pools removes installed zfs packages", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		require.NoError(t, e.CleanupZFS(context.Background(), nil))
		assert.Equal(t, [][]string{{"pacman", "-Q", "zfs-utils"}, remove("zfs-utils")}, fake.Commands())
	})

	t.Run("zfs packages not installed", func(t *testing.T) {
		fake := &runnertest.Fake{RunFunc: runnertest.Exit(1)}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.CleanupZFS(context.Background(), []map[string]any{})))
		assert.Len(t, fake.Calls, 1)
	})

	t.Run("pools in use", func(t *testing.T) {
		fake := &runnertest.Fake{}
		e, _ := newExecutor(t, fake, nil)

		assert.True(t, IsSkip(e.CleanupZFS(context.Background(), []map[string]any{{"name": "zpcachyos"}})))
		assert.Empty(t, fake.Calls)
	})
}

func TestInstallSelection(t *testing.T) {
	fake := &runnertest.Fake{}
	e, _ := newExecutor(t, fake, nil)

	assert.True(t, IsSkip(e.InstallSelection(context.Background(), nil)))
	assert.True(t, IsSkip(e.InstallSelection(context.Background(), []string{})))
	assert.Empty(t, fake.Calls)

	require.NoError(t, e.InstallSelection(context.Background(), []string{"firefox", "libreoffice-fresh"}))
	assert.Equal(t, [][]string{{"pacman", "-S", "--noconfirm", "firefox", "libreoffice-fresh"}}, fake.Commands())
}

func TestExecutor_Run(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("intel-ucode", "boost")}
	e, _ := newExecutor(t, fake, nil)
	report := NewReport()

	e.Run(context.Background(), Facts{
		CPUVendor: "AuthenticAMD",
		BootMode:  "free",
		Firmware:  "bios",
		Selected:  []string{"firefox"},
		ZFSPools:  []map[string]any{{"name": "tank"}},
	}, report.Callback())

	names := make([]string, 0, len(report.Events()))
	for _, ev := range report.Events() {
		names = append(names, ev.Action)
	}
	assert.Equal(t, []string{
		ActionDBLock, ActionMicrocode, ActionFirmware, ActionDrivers,
		ActionNvidiaSelect, ActionLiveCleanup, ActionZFSCleanup, ActionSelection,
	}, names)

	assert.Equal(t, StatusFailed, report.Find(ActionMicrocode).Status)
	assert.Equal(t, StatusOK, report.Find(ActionFirmware).Status)
	assert.Equal(t, StatusFailed, report.Find(ActionLiveCleanup).Status)
	assert.Equal(t, StatusSkipped, report.Find(ActionZFSCleanup).Status)
	assert.Equal(t, StatusOK, report.Find(ActionSelection).Status)
	assert.Len(t, report.Failures(), 2)

	last := fake.Calls[len(fake.Calls)-1]
	assert.Equal(t, []string{"pacman", "-S", "--noconfirm", "firefox"}, last.Argv())
}

func TestExecutor_Run_UnreadableZFSPoolsKeepsTooling(t *testing.T) {
	fake := &runnertest.Fake{}
	e, _ := newExecutor(t, fake, nil)
	report := NewReport()

	e.Run(context.Background(), Facts{ZFSPoolsUnreadable: true}, report.Callback())

	ev := report.Find(ActionZFSCleanup)
	require.NotNil(t, ev)
	assert.Equal(t, StatusSkipped, ev.Status)
	assert.Equal(t, "zfsPoolInfo unreadable", ev.Message)
	assert.NotContains(t, fake.Commands(), []string{"pacman", "-Q", "zfs-utils"})
	assert.NotContains(t, fake.Commands(), remove("zfs-utils"))
}
