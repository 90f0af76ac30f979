package cgroup

// Version identifies a cgroup hierarchy layout.
type Version int

const (
	// VersionUnknown means no usable hierarchy was found.
	VersionUnknown Version = iota
	// V1 is a legacy hierarchy with one mount per controller.
	V1
	// V2 is the unified hierarchy.
	V2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "unknown"
	}
}
