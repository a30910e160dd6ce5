package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Store keys shared between the hooks and the installer host.
const (
	KeyCPUVendor      = "cpu_vendor"
	KeyNvidiaGPUName  = "nvidia_gpu_name"
	KeyGPUDrivers     = "gpuDrivers"
	KeyKernelBootMode = "kernel_boot_mode"
	KeyFirmwareType   = "firmwareType"
	KeyRootMountPoint = "rootMountPoint"
	KeyPackageChooser = "packagechooser_packages"
	KeyDesktop        = "desktop_environment"
	KeyEditionType    = "edition_type"
	KeyEditionSource  = "edition_source"
	KeyThemeConfig    = "theme_config"
	KeyZFSPoolInfo    = "zfsPoolInfo"
	KeyHostSummary    = "host_summary"
)

// Values of KeyEditionSource.
const (
	EditionDetected = "detected"
	EditionChosen   = "chosen"
)

// ErrMissing is returned by typed getters when a key is absent or null.
var ErrMissing = errors.New("missing value")

// Kind is the value type a schema key must hold.
type Kind string

const (
	KindString     Kind = "string"
	KindStringList Kind = "string list"
	KindMap        Kind = "map"
	KindMapList    Kind = "map list"
)

// Field describes one schema key.
type Field struct {
	Key         string
	Kind        Kind
	Enum        []string // Allowed values for KindString, empty for any
	Description string
}

// Schema lists every key the hooks read or write, in pipeline order.
var Schema = []Field{
	{Key: KeyCPUVendor, Kind: KindString, Description: "CPU vendor ID"},
	{Key: KeyNvidiaGPUName, Kind: KindStringList, Description: "Discrete GPU descriptions"},
	{Key: KeyGPUDrivers, Kind: KindStringList, Description: "Kernel drivers bound to display devices"},
	{Key: KeyKernelBootMode, Kind: KindString, Enum: []string{"free", "nonfree"}, Description: "Driver boot mode"},
	{Key: KeyHostSummary, Kind: KindMap, Description: "Host platform details"},
	{Key: KeyFirmwareType, Kind: KindString, Enum: []string{"bios", "efi"}, Description: "Firmware type"},
	{Key: KeyRootMountPoint, Kind: KindString, Description: "Target root mount point"},
	{Key: KeyPackageChooser, Kind: KindStringList, Description: "Packages selected for install"},
	{Key: KeyDesktop, Kind: KindString, Enum: []string{"kde", "gnome", "xfce", "none"}, Description: "Desktop environment"},
	{Key: KeyEditionType, Kind: KindString, Enum: []string{"pure", "themed"}, Description: "Edition"},
	{Key: KeyEditionSource, Kind: KindString, Enum: []string{EditionDetected, EditionChosen}, Description: "Who set the edition"},
	{Key: KeyThemeConfig, Kind: KindMap, Description: "Theme options"},
	{Key: KeyZFSPoolInfo, Kind: KindMapList, Description: "ZFS pools created by the partitioner"},
}

// Lookup returns the schema field for key.
func Lookup(key string) (Field, bool) {
	for _, f := range Schema {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// SchemaError reports a value that does not match its schema field.
type SchemaError struct {
	Key    string
	Kind   Kind
	Value  any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: expected %s, got %T", e.Key, e.Kind, e.Value)
}

// Check validates value against the schema field for key. Unknown keys and
// nil values pass.
func Check(key string, value any) error {
	f, ok := Lookup(key)
	if !ok || value == nil {
		return nil
	}
	_, err := convert(f, value)
	return err
}

// convert coerces a decoded document value to the Go type of f.Kind.
func convert(f Field, value any) (any, error) {
	mismatch := &SchemaError{Key: f.Key, Kind: f.Kind, Value: value}

	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return nil, &SchemaError{
				Key:    f.Key,
				Kind:   f.Kind,
				Value:  value,
				Reason: fmt.Sprintf("%q is not one of %s", s, strings.Join(f.Enum, ", ")),
			}
		}
		return s, nil

	case KindStringList:
		switch v := value.(type) {
		case []string:
			return slices.Clone(v), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, mismatch
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, mismatch

	case KindMap:
		m, ok := asMap(value)
		if !ok {
			return nil, mismatch
		}
		return m, nil

	case KindMapList:
		switch v := value.(type) {
		case []map[string]any:
			return slices.Clone(v), nil
		case []any:
			out := make([]map[string]any, 0, len(v))
			for _, item := range v {
				m, ok := asMap(item)
				if !ok {
					return nil, mismatch
				}
				out = append(out, m)
			}
			return out, nil
		}
		return nil, mismatch
	}

	return nil, mismatch
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = item
		}
		return out, true
	}
	return nil, false
}
