package settings

import "fmt"

// ChangeKind identifies one of the tracked installation-setting changes. Only
// these four kinds invalidate cached script definitions.
type ChangeKind int

const (
	ChangeUnspecified ChangeKind = iota
	ChangeVMOptions
	ChangeHomePath
	ChangeServiceDirectory
	ChangeDistributionType
)

// String returns a string representation of the ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeVMOptions:
		return "vm_options"
	case ChangeHomePath:
		return "home_path"
	case ChangeServiceDirectory:
		return "service_directory"
	case ChangeDistributionType:
		return "distribution_type"
	case ChangeUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Diff compares two settings snapshots and returns the tracked changes between
// them. Untracked field changes (e.g. SyncInProgress) are not reported.
func Diff(old, new *Settings) []ChangeKind {
	if old == nil || new == nil {
		if old == new {
			return nil
		}
		// A record appearing or disappearing counts as a home path change.
		return []ChangeKind{ChangeHomePath}
	}

	var changes []ChangeKind
	if old.DaemonVMOptions != new.DaemonVMOptions {
		changes = append(changes, ChangeVMOptions)
	}
	if old.GradleHome != new.GradleHome {
		changes = append(changes, ChangeHomePath)
	}
	if old.ServiceDirectory != new.ServiceDirectory {
		changes = append(changes, ChangeServiceDirectory)
	}
	if old.DistributionType != new.DistributionType {
		changes = append(changes, ChangeDistributionType)
	}
	return changes
}
