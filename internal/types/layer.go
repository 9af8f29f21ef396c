package types

type LayerItem struct {
	Kind    LayerKind
	Value   string
	Version string
	Source  Instruction
}

// Display renders the item the way reports show it: the bare value, or
// value:version for language items detected from a tagged base image.
func (i LayerItem) Display() string {
	if i.Version == "" {
		return i.Value
	}
	return i.Value + ":" + i.Version
}

type Layers struct {
	OS           []LayerItem
	Language     []LayerItem
	Dependencies []LayerItem
	Operations   []LayerItem
}

// Classification is the outcome of one classifier pass over a build file.
type Classification struct {
	Layers             Layers
	Languages          []string
	ScriptDependencies []DependencyRecord
	LayerDependencies  []DependencyRecord
	Manifests          []ManifestFile
	BaseImages         []BaseImage
	Diagnostics        []string
}
