package types

// Instruction is one directive of a build file. Line is the 1-indexed
// line the directive starts on; expanded sub-commands keep their
// parent's line.
type Instruction struct {
	Directive Directive
	Argument  string
	Line      int
	Flags     []string
}

type ImageReference struct {
	Repository    string
	Name          string
	Tag           string
	HasRepository bool
	HasTag        bool
}

type LanguageVersionEntry struct {
	Language          string
	Platform          string
	SupportedVersions []string
}
