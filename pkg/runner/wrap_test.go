package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner/runnertest"
)

func TestChroot_Run(t *testing.T) {
	fake := &runnertest.Fake{}
	r := runner.NewChroot(fake, "chroot", "/tmp/calamares-root")

	_, err := r.Run(context.Background(), runner.Command("pacman", "-S", "--noconfirm", "vim"))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"chroot", "/tmp/calamares-root", "pacman", "-S", "--noconfirm", "vim"}}, fake.Commands())
}

func TestChroot_RunDirectWithoutRoot(t *testing.T) {
	fake := &runnertest.Fake{}
	r := runner.NewChroot(fake, "chroot", "")

	_, err := r.Run(context.Background(), runner.Command("pacman", "-Q", "vim"))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"pacman", "-Q", "vim"}}, fake.Commands())
}

func TestEscalated_Run(t *testing.T) {
	tests := []struct {
		name    string
		wrapper string
		want    []string
	}{
		{"sudo", "sudo", []string{"sudo", "rm", "-f", "/mnt/var/lib/pacman/db.lck"}},
		{"no wrapper", "", []string{"rm", "-f", "/mnt/var/lib/pacman/db.lck"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &runnertest.Fake{}
			r := runner.NewEscalated(fake, tt.wrapper)

			_, err := r.Run(context.Background(), runner.Command("rm", "-f", "/mnt/var/lib/pacman/db.lck"))
			require.NoError(t, err)
			assert.Equal(t, [][]string{tt.want}, fake.Commands())
		})
	}
}

func TestFake_FailOn(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("boost")}

	_, err := fake.Run(context.Background(), runner.Command("pacman", "-Rns", "--noconfirm", "boost"))
	assert.True(t, runner.IsExitError(err))

	_, err = fake.Run(context.Background(), runner.Command("pacman", "-Rns", "--noconfirm", "boost-libs"))
	assert.NoError(t, err)
}
