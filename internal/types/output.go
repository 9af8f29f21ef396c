package types

type Operation struct {
	Directive Directive `json:"directive" yaml:"directive"`
	Argument  string    `json:"argument" yaml:"argument"`
}

type BaseImage struct {
	Raw        string `json:"raw" yaml:"raw"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
	Name       string `json:"name" yaml:"name"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Canonical  string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

type Report struct {
	BuildFile        string      `json:"buildFile" yaml:"build_file"`
	OS               []string    `json:"os" yaml:"os"`
	Language         []string    `json:"language" yaml:"language"`
	Dependencies     []string    `json:"dependencies" yaml:"dependencies"`
	Operations       []Operation `json:"operations" yaml:"operations"`
	BaseImages       []BaseImage `json:"baseImages,omitempty" yaml:"base_images,omitempty"`
	Manifests        []string    `json:"manifests,omitempty" yaml:"manifests,omitempty"`
	MissingManifests []string    `json:"missingManifests,omitempty" yaml:"missing_manifests,omitempty"`
	Diagnostics      []string    `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ScriptNode is a generic syntax tree node, shared by the build-file AST
// view and the embedded shell-script parser.
type ScriptNode struct {
	Type     string       `json:"type"`
	Value    string       `json:"value,omitempty"`
	Children []ScriptNode `json:"children"`
}

const ScriptNodeUnknown = "UNKNOWN"
