package types

import "fmt"

// Version is a Darwin kernel release expressed as a (major, minor) pair.
// Comparison is always integer pair comparison; deriving a float would
// collapse minor releases at or above 10 into the wrong order.
type Version struct {
	Major int `yaml:"major"`
	Minor int `yaml:"minor"`
}

// Named Darwin majors for the releases the patcher reasons about.
var (
	VersionHighSierra = Version{Major: 17}
	VersionMojave     = Version{Major: 18}
	VersionCatalina   = Version{Major: 19}
	VersionBigSur     = Version{Major: 20}
	VersionMonterey   = Version{Major: 21}
	VersionVentura    = Version{Major: 22}
	VersionSonoma     = Version{Major: 23}
)

func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// Compare returns -1, 0, or 1 ordering v against other by major then minor.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

func (v Version) Before(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) After(other Version) bool {
	return v.Compare(other) > 0
}

func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

func (v Version) AtMost(other Version) bool {
	return v.Compare(other) <= 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// OSRange is an inclusive [Min, Max] support window for a catalog entry.
type OSRange struct {
	Min Version `yaml:"min"`
	Max Version `yaml:"max"`
}

func (r OSRange) Contains(v Version) bool {
	return v.AtLeast(r.Min) && v.AtMost(r.Max)
}
