package core

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"dockerfile-analyzer/internal/types"
)

// recordSeparators is the ordered list of name/version separators tried
// when parsing a raw dependency string.
var recordSeparators = []string{"==", ":", "@"}

// ParseRecord splits a raw "name==version", "name:version" or
// "name@version" string. A Maven "group:artifact:version" coordinate
// splits on its last colon, an unversioned "group:artifact" stays whole
// and a scoped npm name keeps its leading "@".
// Strings without a separator become a bare name.
func ParseRecord(raw string) types.DependencyRecord {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.DependencyRecord{}
	}
	for _, sep := range recordSeparators {
		idx := strings.Index(raw, sep)
		if idx < 0 {
			continue
		}
		switch sep {
		case ":":
			if strings.Count(raw, ":") > 1 {
				idx = strings.LastIndex(raw, ":")
			} else if isMavenCoordinate(raw[:idx], raw[idx+1:]) {
				return types.DependencyRecord{Name: raw}
			}
		case "@":
			idx = strings.LastIndex(raw, "@")
			if idx == 0 {
				return types.DependencyRecord{Name: raw}
			}
		}
		name := strings.TrimSpace(raw[:idx])
		version := strings.TrimSpace(raw[idx+len(sep):])
		if name == "" {
			return types.DependencyRecord{Name: raw}
		}
		return types.DependencyRecord{Name: name, Version: version}
	}
	return types.DependencyRecord{Name: raw}
}

// isMavenCoordinate reports a dotted group id followed by an artifact id
// rather than a version.
func isMavenCoordinate(group string, artifact string) bool {
	group = strings.TrimSpace(group)
	artifact = strings.TrimSpace(artifact)
	if !strings.Contains(group, ".") || artifact == "" {
		return false
	}
	return !unicode.IsDigit(rune(artifact[0])) && !strings.ContainsAny(artifact[:1], "^~<>=*")
}

type DependencyMerger struct{}

func NewDependencyMerger() DependencyMerger {
	return DependencyMerger{}
}

// Merge keeps one record per name, in order of first appearance. A
// versioned record replaces an unversioned one and among versioned
// records the highest version wins; ties keep the earlier record.
func (m DependencyMerger) Merge(ctx context.Context, records []types.DependencyRecord) []types.DependencyRecord {
	cache := newVersionCache()
	index := map[string]int{}
	var merged []types.DependencyRecord
	for _, record := range records {
		record.Name = strings.TrimSpace(record.Name)
		record.Version = strings.TrimSpace(record.Version)
		if record.Name == "" {
			continue
		}
		pos, ok := index[record.Name]
		if !ok {
			index[record.Name] = len(merged)
			merged = append(merged, record)
			continue
		}
		current := merged[pos]
		if record.Version == "" {
			continue
		}
		if current.Version == "" {
			merged[pos] = record
			continue
		}
		ecosystem := current.Ecosystem
		if ecosystem == "" {
			ecosystem = record.Ecosystem
		}
		if cache.compare(ecosystem, record.Version, current.Version) > 0 {
			log.Ctx(ctx).Debug().
				Str("dependency", record.Name).
				Str("kept", record.Version).
				Str("dropped", current.Version).
				Msg("higher version wins")
			merged[pos] = record
		}
	}
	return merged
}

// MergeStrings parses, merges and re-serializes raw dependency strings as
// name==version (or name when no version was ever seen).
func (m DependencyMerger) MergeStrings(ctx context.Context, raw []string) []string {
	records := make([]types.DependencyRecord, 0, len(raw))
	for _, entry := range raw {
		records = append(records, ParseRecord(entry))
	}
	var out []string
	for _, record := range m.Merge(ctx, records) {
		out = append(out, record.String())
	}
	return out
}
