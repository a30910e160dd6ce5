package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ihook", pflag.ContinueOnError)
	fs.String("store", DefaultStorePath, "")
	fs.String("log-level", "info", "")
	fs.String("log-format", FormatConsole, "")
	fs.Bool("dark", false, "")
	return fs
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultStorePath, cfg.Store)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "01:00.0", cfg.Probe.GPUBusAddress)
	assert.Equal(t, "org.kde.breeze", cfg.Edition.KDEPureMarker)
	assert.Equal(t, []string{"efibootmgr", "refind-efi"}, cfg.Actions.EFIPackages)
	assert.False(t, cfg.Actions.NvidiaSelect)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "ihook.yaml", "store: /tmp/gs.yaml\nlog:\n  level: debug\nactions:\n  live_packages: [calamares]\n  nvidia_select: true\nprobe:\n  gpu_bus_address: \"02:00.0\"\n"},
		{"json", "ihook.json", `{"store": "/tmp/gs.yaml", "log": {"level": "debug"}, "actions": {"live_packages": ["calamares"], "nvidia_select": true}, "probe": {"gpu_bus_address": "02:00.0"}}`},
		{"toml", "ihook.toml", "store = \"/tmp/gs.yaml\"\n[log]\nlevel = \"debug\"\n[actions]\nlive_packages = [\"calamares\"]\nnvidia_select = true\n[probe]\ngpu_bus_address = \"02:00.0\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(nil, writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "/tmp/gs.yaml", cfg.Store)
			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, FormatConsole, cfg.Log.Format)
			assert.Equal(t, []string{"calamares"}, cfg.Actions.LivePackages)
			assert.True(t, cfg.Actions.NvidiaSelect)
			assert.Equal(t, "02:00.0", cfg.Probe.GPUBusAddress)
			assert.Equal(t, "VGA compatible controller", cfg.Probe.GPUClass)
			assert.Equal(t, []string{"efibootmgr", "refind-efi"}, cfg.Actions.EFIPackages)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load(nil, writeConfig(t, "ihook.ini", "store=/tmp"))
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "ihook.yaml", "store: /from/file.yaml\nlog:\n  level: warn\n  format: json\n")

	t.Setenv("IHOOK_LOG__LEVEL", "error")
	t.Setenv("IHOOK_ACTIONS__ZFS_PACKAGES", "zfs-utils,zfs-dkms")
	t.Setenv("IHOOK_EDITION__REQUIRE_DESKTOP", "true")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--dark"}))

	cfg, err := Load(fs, path)
	require.NoError(t, err)

	assert.Equal(t, "/from/file.yaml", cfg.Store, "unset flag keeps file value")
	assert.Equal(t, FormatJSON, cfg.Log.Format, "file overrides default")
	assert.Equal(t, "debug", cfg.Log.Level, "flag overrides env")
	assert.Equal(t, []string{"zfs-utils", "zfs-dkms"}, cfg.Actions.ZFSPackages)
	assert.True(t, cfg.Edition.RequireDesktop)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "ihook.yaml", "store: /from/file.yaml\n")
	t.Setenv("IHOOK_STORE", "/from/env.json")

	cfg, err := Load(newFlags(), path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.Store)
}

func TestLoad_InvalidFormat(t *testing.T) {
	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--log-format", "xml"}))

	_, err := Load(fs, "")
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("IHOOK_LOG__LEVEL"))
	assert.Equal(t, "actions.nvidia_select", envKey("IHOOK_ACTIONS__NVIDIA_SELECT"))
	assert.Equal(t, "store", envKey("IHOOK_STORE"))
}
