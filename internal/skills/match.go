// Package skills provides skill matching between job requirements and resume skills.
//
// Matching is loose: a required skill matches a resume skill when either
// contains the other, compared case-insensitively ("React" matches "React Native").
package skills

import (
	"math"
	"strings"
)

// Matches reports whether a required skill and a resume skill overlap.
// Blank skills never match.
func Matches(required, have string) bool {
	r := strings.ToLower(strings.TrimSpace(required))
	h := strings.ToLower(strings.TrimSpace(have))
	if r == "" || h == "" {
		return false
	}
	return strings.Contains(h, r) || strings.Contains(r, h)
}

// MatchesAny reports whether required overlaps any of the resume skills.
func MatchesAny(required string, have []string) bool {
	for _, h := range have {
		if Matches(required, h) {
			return true
		}
	}
	return false
}

// Partition splits required skills into those matched by the resume and those missing,
// preserving the input order.
func Partition(required, have []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, r := range required {
		if MatchesAny(r, have) {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return matched, missing
}

// Ratio returns matched/required in [0, 1]. No required skills yields 0.
func Ratio(required, have []string) float64 {
	if len(required) == 0 {
		return 0
	}
	matched, _ := Partition(required, have)
	return float64(len(matched)) / float64(len(required))
}

// Score returns the rounded match percentage and the matched skills.
// It is 0 when there are no required skills or no resume skills.
func Score(required, have []string) (int, []string) {
	if len(required) == 0 || len(have) == 0 {
		return 0, []string{}
	}
	matched, _ := Partition(required, have)
	pct := float64(len(matched)) / float64(len(required)) * 100
	return int(math.Round(pct)), matched
}
