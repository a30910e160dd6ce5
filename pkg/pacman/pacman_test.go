package pacman

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner/runnertest"
)

func TestManager_Remove(t *testing.T) {
	fake := &runnertest.Fake{}
	m := New(fake)

	require.NoError(t, m.Remove(context.Background(), "nvidia", "nvidia-utils"))
	assert.Equal(t, [][]string{{"pacman", "-Rns", "--noconfirm", "nvidia", "nvidia-utils"}}, fake.Commands())
}

func TestManager_Remove_Empty(t *testing.T) {
	fake := &runnertest.Fake{}
	require.NoError(t, New(fake).Remove(context.Background()))
	assert.Empty(t, fake.Calls)
}

func TestManager_Remove_Failure(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("refind-efi")}

	err := New(fake).Remove(context.Background(), "efibootmgr", "refind-efi")
	require.Error(t, err)
	assert.True(t, runner.IsExitError(err))
	assert.Contains(t, err.Error(), "efibootmgr, refind-efi")
}

func TestManager_Install_ThroughChroot(t *testing.T) {
	fake := &runnertest.Fake{}
	m := New(runner.NewChroot(fake, "arch-chroot", "/mnt"))

	require.NoError(t, m.Install(context.Background(), "firefox", "vlc"))
	assert.Equal(t, [][]string{{"arch-chroot", "/mnt", "pacman", "-S", "--noconfirm", "firefox", "vlc"}}, fake.Commands())
}

func TestManager_IsInstalled(t *testing.T) {
	ok, err := New(&runnertest.Fake{RunFunc: runnertest.Stdout("nvidia-open 550.78-1\n")}).IsInstalled(context.Background(), "nvidia-open")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = New(&runnertest.Fake{RunFunc: runnertest.Exit(1)}).IsInstalled(context.Background(), "nvidia-open")
	require.NoError(t, err)
	assert.False(t, ok)

	failing := &runnertest.Fake{RunFunc: func(context.Context, runner.Cmd) (runner.Result, error) {
		return runner.Result{}, runnertest.ErrBoom
	}}
	_, err = New(failing).IsInstalled(context.Background(), "nvidia-open")
	assert.ErrorIs(t, err, runnertest.ErrBoom)
}

func TestManager_InstalledVersion(t *testing.T) {
	v, err := New(&runnertest.Fake{RunFunc: runnertest.Stdout("pacman 6.1.0-3\n")}).InstalledVersion(context.Background(), "pacman")
	require.NoError(t, err)
	assert.Equal(t, "6.1.0-3", v)

	v, err = New(&runnertest.Fake{RunFunc: runnertest.Exit(1)}).InstalledVersion(context.Background(), "pacman")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"nvidia", "nvidia-utils", "qt5-svg", "lib32-mesa", "gtk+", "python3.12", "@foo"} {
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "-Rns", "Firefox", "foo bar", ".hidden", "a;rm"} {
		assert.False(t, ValidName(name), name)
	}
}
