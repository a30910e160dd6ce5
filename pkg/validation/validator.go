// Package validation checks a decision store document before the hooks
// consume it.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/pacman"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in a store document.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// Validator validates store documents.
type Validator struct {
	// RequireRoot turns a missing rootMountPoint into an error. The
	// packages hook cannot run without it.
	RequireRoot bool
}

// NewValidator creates a new Validator.
func NewValidator(requireRoot bool) *Validator {
	return &Validator{RequireRoot: requireRoot}
}

// ValidateFile loads and validates the document at path.
func (v *Validator) ValidateFile(path string) *Result {
	s, err := store.Load(path)
	if err != nil {
		return &Result{Issues: []Issue{{
			File:     path,
			Message:  err.Error(),
			Severity: SeverityError,
		}}}
	}
	return v.Validate(s)
}

// Validate checks every schema key present in s plus the inputs the
// packages hook needs.
func (v *Validator) Validate(s *store.Store) *Result {
	result := &Result{Issues: []Issue{}}
	file := s.Path()

	add := func(field string, sev Severity, format string, args ...any) {
		result.Issues = append(result.Issues, Issue{
			File:     file,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}

	for _, key := range s.Keys() {
		value, _ := s.Value(key)
		if err := store.Check(key, value); err != nil {
			add(key, SeverityError, "%v", err)
		}
	}

	v.validateRoot(s, add)
	validatePackages(s, add)
	validateThemeConfig(s, add)

	if !s.Contains(store.KeyFirmwareType) {
		add(store.KeyFirmwareType, SeverityWarning, "firmware type not set, firmware cleanup will be skipped")
	}

	return result
}

type addFunc func(field string, sev Severity, format string, args ...any)

func (v *Validator) validateRoot(s *store.Store, add addFunc) {
	root, err := s.String(store.KeyRootMountPoint)
	switch {
	case store.IsMissing(err) || (err == nil && strings.TrimSpace(root) == ""):
		sev := SeverityWarning
		if v.RequireRoot {
			sev = SeverityError
		}
		add(store.KeyRootMountPoint, sev, "%s is required by the packages hook", store.KeyRootMountPoint)
	case err != nil:
		// Reported by the schema check.
	case !filepath.IsAbs(root):
		add(store.KeyRootMountPoint, SeverityError, "root mount point must be an absolute path, got %q", root)
	}
}

func validatePackages(s *store.Store, add addFunc) {
	pkgs, err := s.StringList(store.KeyPackageChooser)
	if err != nil {
		return
	}
	for _, pkg := range pkgs {
		if !pacman.ValidName(pkg) {
			add(store.KeyPackageChooser, SeverityError, "invalid package name %q", pkg)
		}
	}
}

func validateThemeConfig(s *store.Store, add addFunc) {
	cfg, err := s.Map(store.KeyThemeConfig)
	if err != nil {
		return
	}
	if dark, ok := cfg["dark"]; ok {
		if _, isBool := dark.(bool); !isBool {
			add(store.KeyThemeConfig, SeverityError, "dark must be true or false, got %v", dark)
		}
	}
}
