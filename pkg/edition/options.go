package edition

// Options holds the detection markers and theme names. The markers are
// substrings matched against settings output and config files.
type Options struct {
	KDEConfigPaths  []string `koanf:"kde_config_paths"`
	KDEPureMarker   string   `koanf:"kde_pure_marker"`
	KDEThemedMarker string   `koanf:"kde_themed_marker"`
	GNOMEMarker     string   `koanf:"gnome_marker"`
	XFCEMarker      string   `koanf:"xfce_marker"`

	KDELookAndFeel Themes `koanf:"kde_lookandfeel"`
	GNOMEGtk       Themes `koanf:"gnome_gtk"`
	GNOMEShell     Theme  `koanf:"gnome_shell"`
	XFCEGtk        Themes `koanf:"xfce_gtk"`
	XFCEWindow     Themes `koanf:"xfce_window"`

	// RequireDesktop makes an unsupported desktop a hook failure.
	RequireDesktop bool `koanf:"require_desktop"`
}

// DefaultOptions returns the stock markers and themes.
func DefaultOptions() Options {
	return Options{
		KDEConfigPaths: []string{
			"$HOME/.config/kdeglobals",
			"$HOME/.kde4/share/config/kdeglobals",
			"/etc/kde/kdeglobals",
		},
		KDEPureMarker:   "org.kde.breeze",
		KDEThemedMarker: "Qogir",
		GNOMEMarker:     "Orchis",
		XFCEMarker:      "Qogir",

		KDELookAndFeel: Themes{
			Pure:   Theme{Light: "org.kde.breeze.desktop", Dark: "org.kde.breezedark.desktop"},
			Themed: Theme{Light: "com.github.vinceliuice.Qogir", Dark: "com.github.vinceliuice.Qogir-dark"},
		},
		GNOMEGtk: Themes{
			Pure:   Theme{Light: "Adwaita", Dark: "Adwaita-dark"},
			Themed: Theme{Light: "Orchis", Dark: "Orchis-Dark"},
		},
		GNOMEShell: Theme{Light: "Orchis", Dark: "Orchis-Dark"},
		XFCEGtk: Themes{
			Pure:   Theme{Light: "Adwaita", Dark: "Adwaita-dark"},
			Themed: Theme{Light: "Qogir", Dark: "Qogir-Dark"},
		},
		XFCEWindow: Themes{
			Pure:   Theme{Light: "Default", Dark: "Default"},
			Themed: Theme{Light: "Qogir", Dark: "Qogir-dark"},
		},
	}
}
