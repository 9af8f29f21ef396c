package ports

import "dockerfile-analyzer/internal/types"

// ManifestPolicyPort decides which manifest files a language requires.
type ManifestPolicyPort interface {
	RequiredManifest(language string) (string, bool)
	Missing(languages []string, manifests []types.ManifestFile) []string
}
