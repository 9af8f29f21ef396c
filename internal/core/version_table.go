package core

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"dockerfile-analyzer/internal/types"
)

type languageVersions struct {
	platforms map[string][]string
	versions  []string
}

// VersionTable maps languages to the versions their official images are
// published for, per platform variant.
type VersionTable struct {
	languages map[string]languageVersions
}

func NewVersionTable() VersionTable {
	return VersionTable{languages: map[string]languageVersions{
		"python": {
			platforms: map[string][]string{"alpine": {"3.7", "3.9", "3.10"}},
			versions:  []string{"3.7", "3.8", "3.9", "3.10", "3.11", "3.12"},
		},
		"node": {
			platforms: map[string][]string{"alpine": {"14", "16"}, "stretch": {}},
			versions:  []string{"12", "14", "16"},
		},
		"java": {
			platforms: map[string][]string{"alpine": {"8", "11"}, "buster": {}},
			versions:  []string{"8", "11", "17"},
		},
		"ruby": {
			platforms: map[string][]string{"alpine": {"2.7", "3.0"}},
			versions:  []string{"2.7", "3.0"},
		},
		"golang": {
			platforms: map[string][]string{"alpine": {"1.16", "1.17"}},
			versions:  []string{"1.16", "1.17"},
		},
		"c": {
			platforms: map[string][]string{"alpine": {"10", "11"}},
			versions:  []string{"10", "11"},
		},
	}}
}

// tableKey maps classifier language names onto table keys.
func tableKey(language string) string {
	if language == "nodejs" {
		return "node"
	}
	return language
}

// Infer returns the first known version of language on platform that
// appears in tagText, e.g. ("python", "3.9-alpine", "alpine") -> "3.9".
func (t VersionTable) Infer(language string, tagText string, platform string) (string, bool) {
	entry, ok := t.languages[tableKey(language)]
	if !ok {
		return "", false
	}
	for _, version := range entry.platforms[platform] {
		if strings.Contains(tagText, version) {
			return version, true
		}
	}
	return "", false
}

// Known reports whether version belongs to one of the versions listed for
// language: after normalization the listed components lead version, so
// 3.11.9 is a known python 3.11. Unknown languages report true.
func (t VersionTable) Known(language string, version string) bool {
	entry, ok := t.languages[tableKey(language)]
	if !ok {
		return true
	}
	normalized := NormalizeVersion(version)
	for _, candidate := range entry.versions {
		if componentsPrefix(normalized, NormalizeVersion(candidate)) {
			return true
		}
	}
	return false
}

func componentsPrefix(version []int, prefix []int) bool {
	if len(prefix) == 0 || len(prefix) > len(version) {
		return false
	}
	for i, part := range prefix {
		if version[i] != part {
			return false
		}
	}
	return true
}

// Entries lists the table rows sorted by language then platform.
func (t VersionTable) Entries() []types.LanguageVersionEntry {
	var entries []types.LanguageVersionEntry
	for language, entry := range t.languages {
		for platform, versions := range entry.platforms {
			entries = append(entries, types.LanguageVersionEntry{
				Language:          language,
				Platform:          platform,
				SupportedVersions: append([]string(nil), versions...),
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Language != entries[j].Language {
			return entries[i].Language < entries[j].Language
		}
		return entries[i].Platform < entries[j].Platform
	})
	return entries
}

var digitRuns = regexp.MustCompile(`\d+`)

// NormalizeVersion keeps the numeric components of s with trailing zeros
// removed: "11.0" -> [11], "2.7.0" -> [2 7].
func NormalizeVersion(s string) []int {
	var parts []int
	for _, run := range digitRuns.FindAllString(s, -1) {
		value, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		parts = append(parts, value)
	}
	for len(parts) > 0 && parts[len(parts)-1] == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func VersionsEqual(a string, b string) bool {
	return CompareNormalized(a, b) == 0
}

// CompareNormalized orders two versions by their normalized components.
// A missing component counts as zero.
func CompareNormalized(a string, b string) int {
	left := NormalizeVersion(a)
	right := NormalizeVersion(b)
	for i := 0; i < len(left) || i < len(right); i++ {
		var l, r int
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
	}
	return 0
}
