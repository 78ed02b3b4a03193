package core

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"rootpatch/internal/types"
)

// ParseVersion turns a "major.minor" release string into a Version.
// Parsing is delegated to semver and truncated to the (major, minor)
// pair; anything beyond the minor component is ignored.
func ParseVersion(raw string) (types.Version, error) {
	parsed, err := semver.NewVersion(raw)
	if err != nil {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version string: %s", raw)).
			WithCause(err)
	}
	version := types.Version{Major: int(parsed.Major()), Minor: int(parsed.Minor())}
	if version.IsZero() {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version must be non-zero: %s", raw))
	}
	return version, nil
}

// ValidateVersion rejects the zero version, which can only come from a
// malformed probe document.
func ValidateVersion(version types.Version) error {
	if version.IsZero() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("detected OS version must be non-zero")
	}
	return nil
}
