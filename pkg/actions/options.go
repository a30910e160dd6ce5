// Package actions performs the mutating install steps driven by detected
// facts: package cleanup, driver setup and package installs in the target
// root.
package actions

// Options configures the executor. Package lists are plain pacman names.
type Options struct {
	Chroot   string `koanf:"chroot"`   // Command used to enter the target root
	Escalate string `koanf:"escalate"` // Privilege wrapper for file removal

	EFIPackages  []string `koanf:"efi_packages"`  // Removed on BIOS systems
	BIOSPackages []string `koanf:"bios_packages"` // Removed on EFI systems

	FreeDriverPackages []string `koanf:"free_driver_packages"`
	BlacklistFile      string   `koanf:"blacklist_file"` // Relative to the target root
	BlacklistContent   string   `koanf:"blacklist_content"`

	NvidiaSelect      bool     `koanf:"nvidia_select"`
	NvidiaOpenPackage string   `koanf:"nvidia_open_package"`
	NvidiaOpenModels  []string `koanf:"nvidia_open_models"`
	NvidiaPackage     string   `koanf:"nvidia_package"`
	NvidiaModels      []string `koanf:"nvidia_models"`

	LivePackages []string `koanf:"live_packages"`
	ZFSPackages  []string `koanf:"zfs_packages"`
}

// DefaultOptions returns the stock package lists.
func DefaultOptions() Options {
	return Options{
		Chroot:   "chroot",
		Escalate: "sudo",

		EFIPackages:  []string{"efibootmgr", "refind-efi"},
		BIOSPackages: []string{},

		FreeDriverPackages: []string{"nvidia", "nvidia-utils", "nvidia-settings"},
		BlacklistFile:      "/usr/lib/modprobe.d/nvidia-utils.conf",
		BlacklistContent:   "blacklist nouveau\n",

		NvidiaOpenPackage: "nvidia-open",
		NvidiaOpenModels: []string{
			"GeForce RTX 2060", "GeForce RTX 2060 Super", "GeForce RTX 2070",
			"GeForce RTX 2070 Super", "GeForce RTX 2080", "GeForce RTX 2080 Super",
			"GeForce RTX 2080 Ti", "GeForce GTX 1660", "GeForce GTX 1660 Ti",
			"GeForce GTX 1660 Super", "GeForce RTX 3060", "GeForce RTX 3060 Ti",
			"GeForce RTX 3070", "GeForce RTX 3070 Ti", "GeForce RTX 3080",
			"GeForce RTX 3080 Ti", "GeForce RTX 3090", "GeForce RTX 4060",
			"GeForce RTX 4060 Ti", "GeForce RTX 4070", "GeForce RTX 4070 Ti",
			"GeForce RTX 4080", "GeForce RTX 4090",
		},
		NvidiaPackage: "nvidia",
		NvidiaModels: []string{
			"GeForce GTX 750", "GeForce GTX 750 Ti", "GeForce GTX 760",
			"GeForce GTX 770", "GeForce GTX 780", "GeForce GTX 780 Ti",
			"GeForce GTX 850M", "GeForce GTX 860M", "GeForce GTX 870M",
			"GeForce GTX 880M", "GeForce GTX 950", "GeForce GTX 960",
			"GeForce GTX 970", "GeForce GTX 980", "GeForce GTX 980 Ti",
			"GeForce GTX 1050", "GeForce GTX 1050 Ti", "GeForce GTX 1060",
			"GeForce GTX 1070", "GeForce GTX 1070 Ti", "GeForce GTX 1080",
			"GeForce GTX 1080 Ti",
		},

		LivePackages: []string{
			"calamares", "boost", "solid", "yaml-cpp", "kpmcore",
			"hwinfo", "qt5-svg", "polkit-qt5", "plasma-framework",
			"qt5-xmlpatterns", "squashfs-tools", "linux-atm",
			"livecd-sounds", "alg-theme-cala-config",
			"mkinitcpio-archiso", "arch-install-scripts",
			"ckbcomp", "mkinitcpio-openswap",
		},
		ZFSPackages: []string{"zfs-utils"},
	}
}
