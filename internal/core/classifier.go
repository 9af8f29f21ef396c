package core

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"dockerfile-analyzer/internal/ports"
	"dockerfile-analyzer/internal/types"
)

// keyword maps a substring to the canonical value it stands for.
type keyword struct {
	match string
	value string
}

var (
	osTagKeywords = []keyword{
		{"alpine", "alpine"},
		{"ubuntu", "ubuntu"},
		{"debian", "debian"},
		{"slim", "debian-slim"},
		{"centos", "centos"},
		{"fedora", "fedora"},
	}
	osImageNames = map[string]struct{}{
		"alpine": {}, "ubuntu": {}, "debian": {}, "centos": {}, "fedora": {},
	}
	imageLanguageKeywords = []keyword{
		{"python", "python"},
		{"node", "nodejs"},
		{"openjdk", "java"},
		{"golang", "golang"},
		{"ruby", "ruby"},
		{"gcc", "c"},
	}
	commandLanguageKeywords = []keyword{
		{"openjdk", "java"},
		{"java", "java"},
		{"python", "python"},
		{"node", "nodejs"},
		{"golang", "golang"},
		{"ruby", "ruby"},
		{"gcc", "c"},
		{"make", "c"},
		{"cmake", "c"},
	}
	// manifestTools maps a tool named on an install command to the
	// manifest file it reads.
	manifestTools = []keyword{
		{"pip", "requirements.txt"},
		{"npm", "package.json"},
		{"maven", "pom.xml"},
		{"mvn", "pom.xml"},
		{"gradle", "build.gradle"},
		{"make", "Makefile"},
		{"gcc", "Makefile"},
	}
	requirementFlagPattern = regexp.MustCompile(`(?:^|\s)(?:-r|--requirement)(?:\s+|=)(\S+)`)

	// operationDirectives are recorded as final operations regardless of
	// their content.
	operationDirectives = map[types.Directive]struct{}{
		types.DirectiveCopy:       {},
		types.DirectiveAdd:        {},
		types.DirectiveEnv:        {},
		types.DirectiveCmd:        {},
		types.DirectiveEntrypoint: {},
		types.DirectiveWorkdir:    {},
	}
)

const defaultLanguage = "c"

// LayerClassifier buckets build-file instructions into the OS, language,
// dependency and final-operation layers.
type LayerClassifier struct {
	Versions VersionTable
	Files    ports.FileProbePort
}

func NewLayerClassifier(files ports.FileProbePort) LayerClassifier {
	return LayerClassifier{
		Versions: NewVersionTable(),
		Files:    files,
	}
}

// ExpandCompound replaces every RUN joined with "&&" by one RUN per
// sub-command, so classification works on a flat list.
func ExpandCompound(instructions []types.Instruction) []types.Instruction {
	out := make([]types.Instruction, 0, len(instructions))
	for _, instruction := range instructions {
		if instruction.Directive != types.DirectiveRun || !strings.Contains(instruction.Argument, "&&") {
			out = append(out, instruction)
			continue
		}
		for _, part := range strings.Split(instruction.Argument, "&&") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sub := instruction
			sub.Argument = part
			out = append(out, sub)
		}
	}
	return out
}

// classifyState is the accumulator threaded through one pass. detected
// spans every build stage: the first language found wins for the whole
// file.
type classifyState struct {
	buildDir  string
	detected  string
	result    types.Classification
	manifests map[string]struct{}
}

// Classify runs a single pass over instructions. buildDir is the
// directory of the build file, used to resolve referenced manifests.
func (c LayerClassifier) Classify(ctx context.Context, instructions []types.Instruction, buildDir string) types.Classification {
	state := &classifyState{
		buildDir:  buildDir,
		manifests: map[string]struct{}{},
	}
	for _, instruction := range ExpandCompound(instructions) {
		switch instruction.Directive {
		case types.DirectiveFrom:
			c.classifyFrom(state, instruction)
		case types.DirectiveRun:
			c.classifyRun(state, instruction)
		default:
			if _, ok := operationDirectives[instruction.Directive]; ok {
				state.addOperation(instruction)
			}
		}
	}
	if state.detected == "" {
		state.result.Layers.Language = append(state.result.Layers.Language, types.LayerItem{
			Kind:  types.LayerKindLanguage,
			Value: defaultLanguage,
		})
		state.detected = defaultLanguage
	}
	state.result.Languages = []string{state.detected}

	log.Ctx(ctx).Debug().
		Str("language", state.detected).
		Int("os", len(state.result.Layers.OS)).
		Int("dependencies", len(state.result.Layers.Dependencies)).
		Int("operations", len(state.result.Layers.Operations)).
		Int("manifests", len(state.result.Manifests)).
		Msg("build file classified")
	return state.result
}

func (c LayerClassifier) classifyFrom(state *classifyState, instruction types.Instruction) {
	fields := strings.Fields(instruction.Argument)
	if len(fields) == 0 {
		return
	}
	raw := fields[0]
	state.result.BaseImages = append(state.result.BaseImages, baseImage(raw))
	ref := DecomposeImage(strings.ToLower(raw))

	if value, ok := detectOS(ref); ok {
		state.result.Layers.OS = append(state.result.Layers.OS, types.LayerItem{
			Kind:   types.LayerKindOS,
			Value:  value,
			Source: instruction,
		})
	}

	if state.detected != "" {
		return
	}
	language, ok := matchKeyword(ref.Name, imageLanguageKeywords)
	if !ok {
		return
	}
	item := types.LayerItem{
		Kind:   types.LayerKindLanguage,
		Value:  language,
		Source: instruction,
	}
	if ref.HasTag && ref.Tag != "" {
		item.Version = c.tagVersion(language, ref.Tag)
		if hasDigit(item.Version) && !c.Versions.Known(language, item.Version) {
			state.diagnose(fmt.Sprintf("unrecognized %s version %s", language, item.Version))
		}
	}
	state.result.Layers.Language = append(state.result.Layers.Language, item)
	state.detected = language
}

// tagVersion derives the language version from an image tag: the text
// before the first "-". For composite tags such as "3.9-alpine" a version
// table entry is preferred when it names the leading components of that
// text, so "16.14-alpine" stays 16.14 rather than a known 14 or 16.
func (c LayerClassifier) tagVersion(language string, tag string) string {
	version, _, _ := strings.Cut(tag, "-")
	if idx := strings.LastIndex(tag, "-"); idx >= 0 {
		if inferred, ok := c.Versions.Infer(language, tag, tag[idx+1:]); ok && versionPrefix(version, inferred) {
			return inferred
		}
	}
	return version
}

// versionPrefix reports whether prefix is version itself or its leading
// dot-separated components.
func versionPrefix(version string, prefix string) bool {
	if !strings.HasPrefix(version, prefix) {
		return false
	}
	rest := version[len(prefix):]
	return rest == "" || rest[0] == '.'
}

func detectOS(ref types.ImageReference) (string, bool) {
	if ref.HasTag {
		if value, ok := matchKeyword(ref.Tag, osTagKeywords); ok {
			return value, true
		}
	}
	if _, ok := osImageNames[ref.Name]; ok {
		return ref.Name, true
	}
	return "", false
}

func (c LayerClassifier) classifyRun(state *classifyState, instruction types.Instruction) {
	command := instruction.Argument
	lower := strings.ToLower(command)

	if state.detected == "" {
		if language, ok := matchKeyword(lower, commandLanguageKeywords); ok {
			state.result.Layers.Language = append(state.result.Layers.Language, types.LayerItem{
				Kind:   types.LayerKindLanguage,
				Value:  language,
				Source: instruction,
			})
			state.detected = language
		}
	}

	for _, token := range scanAptInstall(command) {
		if language, ok := runtimePackageLanguage(token.raw); ok {
			value := token.raw
			if language == "java" {
				value = "java"
			}
			state.result.Layers.Language = append(state.result.Layers.Language, types.LayerItem{
				Kind:   types.LayerKindLanguage,
				Value:  value,
				Source: instruction,
			})
			if state.detected == "" {
				state.detected = language
			}
			continue
		}
		state.result.Layers.Dependencies = append(state.result.Layers.Dependencies, types.LayerItem{
			Kind:   types.LayerKindDependency,
			Value:  token.raw,
			Source: instruction,
		})
		state.result.LayerDependencies = append(state.result.LayerDependencies, token.record)
	}

	state.result.ScriptDependencies = append(state.result.ScriptDependencies, scanScriptInstalls(command)...)
	c.discoverManifests(state, lower, command)
	state.addOperation(instruction)
}

// runtimePackageLanguage reports packages that install a language runtime
// rather than a library.
func runtimePackageLanguage(pkg string) (string, bool) {
	lower := strings.ToLower(pkg)
	switch {
	case strings.Contains(lower, "python"), strings.Contains(lower, "pip"):
		return "python", true
	case strings.Contains(lower, "java"):
		return "java", true
	default:
		return "", false
	}
}

// discoverManifests records the manifest files an install command reads.
// Files missing next to the build file become diagnostics.
func (c LayerClassifier) discoverManifests(state *classifyState, lower string, command string) {
	for _, match := range requirementFlagPattern.FindAllStringSubmatch(command, -1) {
		path := strings.Trim(match[1], `"'`)
		c.lookupManifest(state, path, types.ManifestFile{Language: "python", Format: types.ManifestFormatPinnedLines})
	}
	if !strings.Contains(lower, "install") {
		return
	}
	seen := map[string]struct{}{}
	for _, tool := range manifestTools {
		if !containsWord(lower, tool.match) {
			continue
		}
		if _, ok := seen[tool.value]; ok {
			continue
		}
		seen[tool.value] = struct{}{}
		if tool.value == "requirements.txt" && requirementFlagPattern.MatchString(command) {
			continue
		}
		c.lookupManifest(state, tool.value, ManifestForPath(tool.value, ""))
	}
}

func (c LayerClassifier) lookupManifest(state *classifyState, path string, manifest types.ManifestFile) {
	resolved := resolveManifestPath(state.buildDir, path)
	if _, ok := state.manifests[resolved]; ok {
		return
	}
	state.manifests[resolved] = struct{}{}
	if c.Files == nil || !c.Files.Exists(resolved) {
		state.diagnose(fmt.Sprintf("manifest %s referenced by RUN not found", path))
		return
	}
	manifest.Path = resolved
	state.result.Manifests = append(state.result.Manifests, manifest)
}

// resolveManifestPath maps a path named inside the build onto the build
// context. Absolute container paths fall back to their base name.
func resolveManifestPath(buildDir string, path string) string {
	if filepath.IsAbs(path) {
		path = filepath.Base(path)
	}
	return filepath.Join(buildDir, filepath.FromSlash(path))
}

func (s *classifyState) addOperation(instruction types.Instruction) {
	s.result.Layers.Operations = append(s.result.Layers.Operations, types.LayerItem{
		Kind:   types.LayerKindOperation,
		Value:  instruction.Argument,
		Source: instruction,
	})
}

func (s *classifyState) diagnose(message string) {
	s.result.Diagnostics = append(s.result.Diagnostics, message)
}

func matchKeyword(text string, keywords []keyword) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw.match) {
			return kw.value, true
		}
	}
	return "", false
}

// containsWord reports whether word appears in text delimited by
// non-alphanumeric characters, so "pip" does not match "pipeline".
func containsWord(text string, word string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if field == word || strings.TrimRight(field, "0123456789") == word {
			return true
		}
	}
	return false
}

func hasDigit(value string) bool {
	return strings.IndexFunc(value, unicode.IsDigit) >= 0
}
