// Package doctor checks that the tools and files the hooks depend on are
// present on the live system, with install hints for missing ones.
package doctor

// CheckStatus represents the status of a dependency check.
type CheckStatus int

const (
	// StatusOK indicates the dependency is installed and working.
	StatusOK CheckStatus = iota
	// StatusMissing indicates the dependency is not installed.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the dependency has issues but may work.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single dependency check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "lspci", "pacman"
	Name        string      // Display name
	Description string      // What the hooks use it for
	Status      CheckStatus // Current status
	Message     string      // Status message (version info, error, etc.)
	FixCommand  *FixCommand // How to fix if missing (nil if not fixable)
}

// FixCommand describes how to fix a missing dependency.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Shell command to run
	Package     string // Package that provides the tool
	Sudo        bool   // Whether the command requires sudo
}

// CheckGroup represents a group of related dependency checks.
type CheckGroup struct {
	ID          string  // Unique identifier, e.g., "probe", "desktop"
	Name        string  // Display name
	Description string  // What this group is for
	Checks      []Check // Individual checks in this group
}

// GroupID constants for check groups.
const (
	GroupProbe   = "probe"
	GroupDesktop = "desktop"
	GroupTarget  = "target"
)

// CheckID constants for individual checks.
const (
	IDLspci           = "lspci"
	IDCPUInfo         = "cpuinfo"
	IDCmdline         = "cmdline"
	IDSession         = "session"
	IDGsettings       = "gsettings"
	IDGnomeExtensions = "gnome-extensions"
	IDXfconfQuery     = "xfconf-query"
	IDKwriteconfig    = "kwriteconfig5"
	IDPlasmaApply     = "plasma-apply-lookandfeel"
	IDPacman          = "pacman"
	IDChroot          = "chroot"
	IDSudo            = "sudo"
)
