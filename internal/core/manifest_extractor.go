package core

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/buger/jsonparser"

	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

const mavenPomNamespace = "http://maven.apache.org/POM/4.0.0"

var pinnedLinePattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)==([^=\s]+)$`)

type ManifestExtractor struct{}

func NewManifestExtractor() ManifestExtractor {
	return ManifestExtractor{}
}

// FormatForLanguage returns the manifest format used by language.
func FormatForLanguage(language string) types.ManifestFormat {
	switch language {
	case "python":
		return types.ManifestFormatPinnedLines
	case "nodejs":
		return types.ManifestFormatJSONDependencyMap
	case "java":
		return types.ManifestFormatMavenPom
	default:
		return types.ManifestFormatGeneric
	}
}

// ManifestForPath infers language and format from a manifest file name.
// fallbackLanguage is used for names that carry no language of their own.
func ManifestForPath(path string, fallbackLanguage string) types.ManifestFile {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	switch {
	case lower == "package.json":
		return types.ManifestFile{Language: "nodejs", Path: path, Format: types.ManifestFormatJSONDependencyMap}
	case lower == "pom.xml":
		return types.ManifestFile{Language: "java", Path: path, Format: types.ManifestFormatMavenPom}
	case lower == "build.gradle" || lower == "build.gradle.kts":
		return types.ManifestFile{Language: "java", Path: path, Format: types.ManifestFormatUnsupported}
	case base == "Makefile" || lower == "makefile":
		return types.ManifestFile{Language: "c", Path: path, Format: types.ManifestFormatUnsupported}
	case strings.HasPrefix(lower, "requirements") && strings.HasSuffix(lower, ".txt"):
		return types.ManifestFile{Language: "python", Path: path, Format: types.ManifestFormatPinnedLines}
	default:
		return types.ManifestFile{Language: fallbackLanguage, Path: path, Format: FormatForLanguage(fallbackLanguage)}
	}
}

// Extract parses a manifest with the format belonging to language.
// Other languages keep every non-blank line.
func (e ManifestExtractor) Extract(language string, data []byte) ([]types.DependencyRecord, error) {
	return e.extractFormat(FormatForLanguage(language), data)
}

// ExtractFile parses the contents of manifest according to its format.
func (e ManifestExtractor) ExtractFile(manifest types.ManifestFile, data []byte) ([]types.DependencyRecord, error) {
	records, err := e.extractFormat(manifest.Format, data)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Source = "manifest:" + filepath.Base(manifest.Path)
	}
	return records, nil
}

func (e ManifestExtractor) extractFormat(format types.ManifestFormat, data []byte) ([]types.DependencyRecord, error) {
	switch format {
	case types.ManifestFormatPinnedLines:
		return extractPinnedLines(data), nil
	case types.ManifestFormatJSONDependencyMap:
		return extractJSONDependencies(data), nil
	case types.ManifestFormatMavenPom:
		return extractMavenPom(data)
	case types.ManifestFormatUnsupported:
		return nil, nil
	default:
		return extractGenericLines(data), nil
	}
}

func extractPinnedLines(data []byte) []types.DependencyRecord {
	var records []types.DependencyRecord
	for _, line := range splitLines(data) {
		match := pinnedLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		records = append(records, types.DependencyRecord{
			Name:      shared.NormalizePipName(match[1]),
			Version:   match[2],
			Ecosystem: types.EcosystemPip,
		})
	}
	return records
}

// extractJSONDependencies reads the top-level "dependencies" map in
// document order. Malformed input yields no records.
func extractJSONDependencies(data []byte) []types.DependencyRecord {
	if !json.Valid(data) {
		return nil
	}
	if _, dataType, _, err := jsonparser.Get(data); err != nil || dataType != jsonparser.Object {
		return nil
	}
	var records []types.DependencyRecord
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType != jsonparser.String {
			return nil
		}
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return nil
		}
		version, err := jsonparser.ParseString(value)
		if err != nil {
			return nil
		}
		records = append(records, types.DependencyRecord{
			Name:      name,
			Version:   version,
			Ecosystem: types.EcosystemNpm,
		})
		return nil
	}, "dependencies")
	if err != nil {
		return nil
	}
	return records
}

type pomDependency struct {
	GroupID    *string `xml:"http://maven.apache.org/POM/4.0.0 groupId"`
	ArtifactID *string `xml:"http://maven.apache.org/POM/4.0.0 artifactId"`
	Version    *string `xml:"http://maven.apache.org/POM/4.0.0 version"`
}

// extractMavenPom collects every <dependency> element in the POM
// namespace, wherever it is nested. Unlike the other formats a parse
// failure is reported.
func extractMavenPom(data []byte) ([]types.DependencyRecord, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var records []types.DependencyRecord
	sawRoot := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, shared.ManifestParseError("pom.xml", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if start.Name.Space != mavenPomNamespace || start.Name.Local != "dependency" {
			continue
		}
		var dep pomDependency
		if err := decoder.DecodeElement(&dep, &start); err != nil {
			return nil, shared.ManifestParseError("pom.xml", err)
		}
		group := trimmedValue(dep.GroupID)
		artifact := trimmedValue(dep.ArtifactID)
		if group == "" || artifact == "" {
			continue
		}
		records = append(records, types.DependencyRecord{
			Name:      group + ":" + artifact,
			Version:   trimmedValue(dep.Version),
			Ecosystem: types.EcosystemMaven,
		})
	}
	if !sawRoot {
		return nil, shared.ManifestParseError("pom.xml", errors.New("no root element"))
	}
	return records, nil
}

// extractGenericLines keeps every non-blank line, split like a raw
// dependency string.
func extractGenericLines(data []byte) []types.DependencyRecord {
	var records []types.DependencyRecord
	for _, line := range splitLines(data) {
		record := ParseRecord(line)
		if record.Name == "" {
			continue
		}
		record.Ecosystem = types.EcosystemGeneric
		records = append(records, record)
	}
	return records
}

func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines
}

func trimmedValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
