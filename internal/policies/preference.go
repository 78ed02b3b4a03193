package policies

import (
	"rootpatch/internal/types"
)

// groupPreference ranks the members of each alternative group from most
// to least preferred. When a plan collects more than one member of a
// group, only the best-ranked survivor stays.
var groupPreference = map[string][]string{
	// The Monterey baseline restore supersedes the narrower Catalina
	// workaround whenever both would be pulled in.
	"gva": {"Monterey GVA", "Catalina GVA"},
}

// PreferredSurvivor returns the entry to keep among present members of
// an alternative group, in fixed preference order. Members missing from
// the preference table lose to any ranked member.
func PreferredSurvivor(group string, present []string) (string, bool) {
	ranked, ok := groupPreference[group]
	if !ok || len(present) == 0 {
		return "", false
	}
	isPresent := make(map[string]bool, len(present))
	for _, name := range present {
		isPresent[name] = true
	}
	for _, name := range ranked {
		if isPresent[name] {
			return name, true
		}
	}
	return "", false
}

// DropsForFlags lists entries that must be removed from a plan because
// a fact-mirror flag makes them redundant: a Haswell unit sharing the
// machine drives video through the newer runtime, so the Kepler-pulled
// Catalina workaround would double-book the same framework.
func DropsForFlags(flags types.CapabilityFlags) []string {
	if flags.HaswellUnitPresent {
		return []string{"Catalina GVA"}
	}
	return nil
}
