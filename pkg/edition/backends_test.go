package edition

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner/runnertest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestKDEBackend_Detect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  Edition
	}{
		{
			name:  "breeze is pure",
			files: map[string]string{"a": "[KDE]\nLookAndFeelPackage=org.kde.breeze.desktop"},
			want:  Pure,
		},
		{
			name:  "qogir is themed",
			files: map[string]string{"a": "[KDE]\nLookAndFeelPackage=Qogir-light"},
			want:  Themed,
		},
		{
			name:  "first matching file wins",
			files: map[string]string{"a": "[General]\nfont=Noto", "b": "[KDE]\nLookAndFeelPackage=Qogir", "c": "org.kde.breeze"},
			want:  Themed,
		},
		{
			name:  "no files",
			files: map[string]string{},
			want:  Pure,
		},
		{
			name:  "no markers",
			files: map[string]string{"a": "[General]\nfont=Noto"},
			want:  Pure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			opts := DefaultOptions()
			opts.KDEConfigPaths = []string{
				filepath.Join(dir, "a"),
				filepath.Join(dir, "b"),
				filepath.Join(dir, "c"),
			}
			b := NewKDE(&runnertest.Fake{}, opts, zerolog.Nop())

			assert.Equal(t, tt.want, b.Detect(context.Background()))
		})
	}
}

func TestKDEBackend_Detect_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config"), 0755))
	writeFile(t, filepath.Join(home, ".config"), "kdeglobals", "LookAndFeelPackage=Qogir-dark")
	t.Setenv("HOME", home)

	opts := DefaultOptions()
	opts.KDEConfigPaths = opts.KDEConfigPaths[:1]
	b := NewKDE(&runnertest.Fake{}, opts, zerolog.Nop())

	assert.Equal(t, Themed, b.Detect(context.Background()))
}

func TestKDEBackend_Detect_ReadError(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	// A directory cannot be read as a file.
	opts.KDEConfigPaths = []string{dir}
	b := NewKDE(&runnertest.Fake{}, opts, zerolog.Nop())

	assert.Equal(t, Pure, b.Detect(context.Background()))
}

func TestKDEBackend_Apply(t *testing.T) {
	fake := &runnertest.Fake{}
	b := NewKDE(fake, DefaultOptions(), zerolog.Nop())

	require.NoError(t, b.Apply(context.Background(), Themed, ThemeConfig{Dark: true}))

	assert.Equal(t, [][]string{
		{"kwriteconfig5", "--file", "kdeglobals", "--group", "KDE", "--key", "LookAndFeelPackage", "com.github.vinceliuice.Qogir-dark"},
		{"plasma-apply-lookandfeel", "--apply", "com.github.vinceliuice.Qogir-dark"},
	}, fake.Commands())
}

func TestKDEBackend_Apply_RunsEveryStep(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("kwriteconfig5")}
	b := NewKDE(fake, DefaultOptions(), zerolog.Nop())

	err := b.Apply(context.Background(), Pure, ThemeConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kwriteconfig5")
	assert.Len(t, fake.Calls, 2)
	assert.Equal(t, "org.kde.breeze.desktop", fake.Calls[1].Args[1])
}

func TestGNOMEBackend_Detect(t *testing.T) {
	tests := []struct {
		name string
		run  func(context.Context, runner.Cmd) (runner.Result, error)
		want Edition
	}{
		{"orchis is themed", runnertest.Stdout("'Orchis-Dark'\n"), Themed},
		{"empty theme is pure", runnertest.Stdout("''\n"), Pure},
		{"query failure is pure", runnertest.Exit(1), Pure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &runnertest.Fake{RunFunc: tt.run}
			b := NewGNOME(fake, DefaultOptions(), zerolog.Nop())

			assert.Equal(t, tt.want, b.Detect(context.Background()))
			assert.Equal(t, []string{"gsettings", "get", "org.gnome.shell.extensions.user-theme", "name"}, fake.Calls[0].Argv())
		})
	}
}

func TestGNOMEBackend_Apply(t *testing.T) {
	t.Run("themed dark", func(t *testing.T) {
		fake := &runnertest.Fake{}
		b := NewGNOME(fake, DefaultOptions(), zerolog.Nop())

		require.NoError(t, b.Apply(context.Background(), Themed, ThemeConfig{Dark: true}))
		assert.Equal(t, [][]string{
			{"gsettings", "set", "org.gnome.desktop.interface", "color-scheme", "prefer-dark"},
			{"gsettings", "set", "org.gnome.desktop.interface", "gtk-theme", "Orchis-Dark"},
			{"gnome-extensions", "enable", "user-theme@gnome-shell-extensions.gcampax.github.com"},
			{"gsettings", "set", "org.gnome.shell.extensions.user-theme", "name", "Orchis-Dark"},
		}, fake.Commands())
	})

	t.Run("pure light resets shell theme", func(t *testing.T) {
		fake := &runnertest.Fake{}
		b := NewGNOME(fake, DefaultOptions(), zerolog.Nop())

		require.NoError(t, b.Apply(context.Background(), Pure, ThemeConfig{}))
		assert.Equal(t, [][]string{
			{"gsettings", "set", "org.gnome.desktop.interface", "color-scheme", "default"},
			{"gsettings", "set", "org.gnome.desktop.interface", "gtk-theme", "Adwaita"},
			{"gsettings", "reset", "org.gnome.shell.extensions.user-theme", "name"},
		}, fake.Commands())
	})

	t.Run("extension failure does not stop theme", func(t *testing.T) {
		fake := &runnertest.Fake{RunFunc: runnertest.FailOn("gnome-extensions")}
		b := NewGNOME(fake, DefaultOptions(), zerolog.Nop())

		err := b.Apply(context.Background(), Themed, ThemeConfig{})
		require.Error(t, err)
		assert.Len(t, fake.Calls, 4)
	})
}

func TestXFCEBackend_Detect(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.Stdout("Qogir-Dark\n")}
	b := NewXFCE(fake, DefaultOptions(), zerolog.Nop())
	assert.Equal(t, Themed, b.Detect(context.Background()))

	fake = &runnertest.Fake{RunFunc: runnertest.Stdout("Greybird\n")}
	b = NewXFCE(fake, DefaultOptions(), zerolog.Nop())
	assert.Equal(t, Pure, b.Detect(context.Background()))

	fake = &runnertest.Fake{RunFunc: runnertest.Exit(1)}
	b = NewXFCE(fake, DefaultOptions(), zerolog.Nop())
	assert.Equal(t, Pure, b.Detect(context.Background()))
}

func TestXFCEBackend_Apply(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.FailOn("xsettings")}
	b := NewXFCE(fake, DefaultOptions(), zerolog.Nop())

	err := b.Apply(context.Background(), Themed, ThemeConfig{Dark: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/Net/ThemeName")
	assert.Equal(t, [][]string{
		{"xfconf-query", "-c", "xsettings", "-p", "/Net/ThemeName", "-s", "Qogir-Dark"},
		{"xfconf-query", "-c", "xfwm4", "-p", "/general/theme", "-s", "Qogir-dark"},
	}, fake.Commands())
}

func TestDetector(t *testing.T) {
	fake := &runnertest.Fake{RunFunc: runnertest.Stdout("'Orchis'")}
	d := NewDetector(Backends(fake, DefaultOptions(), zerolog.Nop()), zerolog.Nop())

	assert.Equal(t, Themed, d.Detect(context.Background(), GNOME))
	assert.Equal(t, Pure, d.Detect(context.Background(), None))
	assert.Equal(t, Pure, d.Detect(context.Background(), Desktop("lxqt")))

	b, ok := d.Backend(XFCE)
	require.True(t, ok)
	assert.Equal(t, XFCE, b.Name())

	assert.Error(t, d.Apply(context.Background(), None, Pure, ThemeConfig{}))
}

func TestDetector_UnsupportedDesktopWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.WarnLevel)
	d := NewDetector(Backends(&runnertest.Fake{}, DefaultOptions(), log), log)

	desktop := DesktopFromEnv("X-Cinnamon", log)
	assert.Equal(t, Pure, d.Detect(context.Background(), desktop))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Unsupported desktop environment")
}
