// Package shared provides common utility functions used across multiple
// packages in the rootpatch codebase.
package shared

import (
	"strconv"
	"strings"
)

// SplitVersionParts parses a dotted version string into its numeric
// components. Non-numeric components truncate the result at their
// position.
func SplitVersionParts(value string) []int {
	raw := strings.Split(strings.TrimSpace(value), ".")
	parts := make([]int, 0, len(raw))
	for _, piece := range raw {
		number, err := strconv.Atoi(piece)
		if err != nil {
			break
		}
		parts = append(parts, number)
	}
	return parts
}

// CompareDottedVersions orders two dotted version strings numerically,
// padding the shorter one with zeros so "22.6" and "22.6.1" compare as
// 22.6.0 against 22.6.1.
func CompareDottedVersions(a, b string) int {
	left := SplitVersionParts(a)
	right := SplitVersionParts(b)
	for len(left) < len(right) {
		left = append(left, 0)
	}
	for len(right) < len(left) {
		right = append(right, 0)
	}
	for i := range left {
		if left[i] != right[i] {
			if left[i] < right[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
