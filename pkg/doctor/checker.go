package doctor

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// Checker provides dependency checking functionality.
type Checker struct {
	runner       runner.Runner
	procRoot     string
	desktopEnv   string
	fileReadable func(string) bool
}

// NewChecker creates a Checker. procRoot is where cpuinfo and cmdline are
// read from and desktopEnv is the session's XDG_CURRENT_DESKTOP value.
func NewChecker(r runner.Runner, procRoot, desktopEnv string) *Checker {
	if procRoot == "" {
		procRoot = "/proc"
	}
	return &Checker{
		runner:       r,
		procRoot:     procRoot,
		desktopEnv:   desktopEnv,
		fileReadable: fileReadable,
	}
}

func fileReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// CheckAll runs all checks and returns groups with results.
func (c *Checker) CheckAll(ctx context.Context) []CheckGroup {
	var result []CheckGroup
	for _, group := range GetGroups() {
		result = append(result, c.CheckGroup(ctx, group.ID))
	}
	return result
}

// CheckAllAsync runs all groups concurrently. Group order is preserved.
func (c *Checker) CheckAllAsync(ctx context.Context) []CheckGroup {
	groups := GetGroups()
	result := make([]CheckGroup, len(groups))
	var wg sync.WaitGroup

	for i, group := range groups {
		wg.Add(1)
		go func(idx int, g CheckGroup) {
			defer wg.Done()
			result[idx] = c.CheckGroup(ctx, g.ID)
		}(i, group)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(ctx context.Context, groupID string) CheckGroup {
	def, ok := GetGroupDefinition(groupID)
	if !ok {
		return CheckGroup{
			ID:   groupID,
			Name: "Unknown",
		}
	}

	group := CheckGroup{
		ID:          groupID,
		Name:        def.Name,
		Description: def.Description,
	}
	for _, checkID := range def.CheckIDs {
		group.Checks = append(group.Checks, c.GetCheck(ctx, checkID))
	}
	return group
}

// GetCheck runs a single check by ID.
func (c *Checker) GetCheck(ctx context.Context, checkID string) Check {
	switch checkID {
	case IDCPUInfo:
		return checkFile(IDCPUInfo, "CPU info", "Source of the CPU vendor",
			filepath.Join(c.procRoot, "cpuinfo"), c.fileReadable)
	case IDCmdline:
		return checkFile(IDCmdline, "Kernel command line", "Source of the boot mode",
			filepath.Join(c.procRoot, "cmdline"), c.fileReadable)
	case IDSession:
		return checkSession(c.desktopEnv)
	default:
		return checkTool(ctx, c.runner, checkID)
	}
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks are missing or failed.
func HasIssues(groups []CheckGroup) bool {
	summary := GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
