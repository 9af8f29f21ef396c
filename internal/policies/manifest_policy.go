package policies

import (
	"path/filepath"
	"strings"

	"dockerfile-analyzer/internal/ports"
	"dockerfile-analyzer/internal/types"
)

var defaultRequiredManifests = map[string]string{
	"python": "requirements.txt",
	"nodejs": "package.json",
	"java":   "pom.xml",
}

type ManifestPolicy struct {
	Required map[string]string
}

func NewManifestPolicy() ManifestPolicy {
	required := make(map[string]string, len(defaultRequiredManifests))
	for language, name := range defaultRequiredManifests {
		required[language] = name
	}
	return ManifestPolicy{Required: required}
}

func (p ManifestPolicy) RequiredManifest(language string) (string, bool) {
	name, ok := p.Required[strings.ToLower(strings.TrimSpace(language))]
	return name, ok
}

// Missing lists required manifest names, in language order, that no
// manifest in the set provides. Manifests are matched by base name.
func (p ManifestPolicy) Missing(languages []string, manifests []types.ManifestFile) []string {
	present := make(map[string]struct{}, len(manifests))
	for _, manifest := range manifests {
		present[filepath.Base(manifest.Path)] = struct{}{}
	}
	seen := map[string]struct{}{}
	var missing []string
	for _, language := range languages {
		name, ok := p.RequiredManifest(language)
		if !ok {
			continue
		}
		if _, ok := present[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}

var _ ports.ManifestPolicyPort = ManifestPolicy{}
