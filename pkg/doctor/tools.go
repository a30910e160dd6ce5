package doctor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// tool describes an executable check.
type tool struct {
	Name         string
	Description  string
	Package      string
	VersionArgs  []string // nil skips the version query
	VersionRegex *regexp.Regexp
}

var tools = map[string]tool{
	IDLspci: {
		Name:         "lspci",
		Description:  "Lists PCI devices and their kernel drivers",
		Package:      "pciutils",
		VersionArgs:  []string{"--version"},
		VersionRegex: regexp.MustCompile(`lspci version (\d+\.\d+(?:\.\d+)?)`),
	},
	IDGsettings: {
		Name:        "gsettings",
		Description: "Reads and writes GNOME settings",
		Package:     "glib2",
		VersionArgs: []string{"--version"},
	},
	IDGnomeExtensions: {
		Name:        "gnome-extensions",
		Description: "Enables the GNOME user-theme extension",
		Package:     "gnome-shell",
		VersionArgs: []string{"version"},
	},
	IDXfconfQuery: {
		Name:         "xfconf-query",
		Description:  "Reads and writes XFCE settings",
		Package:      "xfconf",
		VersionArgs:  []string{"--version"},
		VersionRegex: regexp.MustCompile(`xfconf-query (\d+\.\d+\.\d+)`),
	},
	IDKwriteconfig: {
		Name:        "kwriteconfig5",
		Description: "Writes KDE configuration files",
		Package:     "kconfig5",
	},
	IDPlasmaApply: {
		Name:        "plasma-apply-lookandfeel",
		Description: "Applies a Plasma global theme",
		Package:     "plasma-workspace",
	},
	IDPacman: {
		Name:         "pacman",
		Description:  "Installs and removes packages",
		Package:      "pacman",
		VersionArgs:  []string{"--version"},
		VersionRegex: regexp.MustCompile(`Pacman v(\d+\.\d+\.\d+)`),
	},
	IDChroot: {
		Name:         "chroot",
		Description:  "Runs package operations inside the target root",
		Package:      "coreutils",
		VersionArgs:  []string{"--version"},
		VersionRegex: regexp.MustCompile(`coreutils\)\s+(\d+\.\d+)`),
	},
	IDSudo: {
		Name:         "sudo",
		Description:  "Removes the package database lock",
		Package:      "sudo",
		VersionArgs:  []string{"--version"},
		VersionRegex: regexp.MustCompile(`Sudo version (\S+)`),
	},
}

// pacmanFix builds the install hint for a package.
func pacmanFix(pkg string) *FixCommand {
	if pkg == "" {
		return nil
	}
	return &FixCommand{
		Description: "Install via pacman",
		Command:     "sudo pacman -S --noconfirm " + pkg,
		Package:     pkg,
		Sudo:        true,
	}
}

// GetFixCommand returns the fix command for a check, or nil.
func GetFixCommand(checkID string) *FixCommand {
	t, ok := tools[checkID]
	if !ok {
		return nil
	}
	return pacmanFix(t.Package)
}

// checkTool checks if a tool is installed and gets its version.
func checkTool(ctx context.Context, r runner.Runner, id string) Check {
	t, ok := tools[id]
	if !ok {
		return Check{ID: id, Name: id, Status: StatusError, Message: "unknown check"}
	}

	check := Check{
		ID:          id,
		Name:        t.Name,
		Description: t.Description,
		FixCommand:  pacmanFix(t.Package),
	}

	path, err := r.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	check.Status = StatusOK
	check.Message = "installed"
	if t.VersionArgs == nil {
		return check
	}

	res, err := r.Run(ctx, runner.Command(path, t.VersionArgs...))
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Message = "installed (version unknown)"
		return check
	}

	// Some tools print their version to stderr
	if version := extractVersion(res.Stdout+"\n"+res.Stderr, t.VersionRegex); version != "" {
		check.Message = version
	}
	return check
}

var defaultVersionRegex = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)

// extractVersion extracts version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		regex = defaultVersionRegex
	}
	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// checkFile checks that a file the hardware hook reads can be opened.
func checkFile(id, name, desc, path string, readable func(string) bool) Check {
	check := Check{ID: id, Name: name, Description: desc}
	if readable(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusError
		check.Message = fmt.Sprintf("cannot read %s", path)
	}
	return check
}

// checkSession reports whether the desktop session has a theme backend.
func checkSession(value string) Check {
	check := Check{
		ID:          IDSession,
		Name:        "Desktop session",
		Description: edition.DesktopEnvVar + " selects the theme backend",
	}

	if d := edition.DesktopFromEnv(value, zerolog.Nop()); d != edition.None {
		check.Status = StatusOK
		check.Message = string(d)
		return check
	}

	check.Status = StatusWarning
	if value == "" {
		check.Message = "not set"
	} else {
		check.Message = fmt.Sprintf("unsupported (%s)", value)
	}
	return check
}
