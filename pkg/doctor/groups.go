package doctor

// groupDefinition defines a check group with its metadata.
type groupDefinition struct {
	Name        string
	Description string
	CheckIDs    []string
}

var groupDefinitions = map[string]groupDefinition{
	GroupProbe: {
		Name:        "Hardware probe",
		Description: "Used by the hardware hook to detect CPU, GPU and boot mode",
		CheckIDs:    []string{IDLspci, IDCPUInfo, IDCmdline},
	},
	GroupDesktop: {
		Name:        "Desktop theme",
		Description: "Used by the edition hook to detect and apply themes",
		CheckIDs:    []string{IDSession, IDGsettings, IDGnomeExtensions, IDXfconfQuery, IDKwriteconfig, IDPlasmaApply},
	},
	GroupTarget: {
		Name:        "Target system",
		Description: "Used by the packages hook to change the installed system",
		CheckIDs:    []string{IDPacman, IDChroot, IDSudo},
	},
}

// GetGroups returns all check groups in display order.
func GetGroups() []CheckGroup {
	var groups []CheckGroup
	for _, groupID := range GetAllGroupIDs() {
		def := groupDefinitions[groupID]
		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (groupDefinition, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs.
func GetAllGroupIDs() []string {
	return []string{GroupProbe, GroupDesktop, GroupTarget}
}
