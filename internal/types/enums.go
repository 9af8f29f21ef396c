package types

import "strings"

type Directive string

const (
	DirectiveFrom        Directive = "FROM"
	DirectiveRun         Directive = "RUN"
	DirectiveCopy        Directive = "COPY"
	DirectiveAdd         Directive = "ADD"
	DirectiveEnv         Directive = "ENV"
	DirectiveCmd         Directive = "CMD"
	DirectiveEntrypoint  Directive = "ENTRYPOINT"
	DirectiveWorkdir     Directive = "WORKDIR"
	DirectiveLabel       Directive = "LABEL"
	DirectiveExpose      Directive = "EXPOSE"
	DirectiveVolume      Directive = "VOLUME"
	DirectiveUser        Directive = "USER"
	DirectiveArg         Directive = "ARG"
	DirectiveOnbuild     Directive = "ONBUILD"
	DirectiveStopSignal  Directive = "STOPSIGNAL"
	DirectiveHealthcheck Directive = "HEALTHCHECK"
	DirectiveShell       Directive = "SHELL"
	// DirectiveMaintainer is deprecated upstream but still accepted.
	DirectiveMaintainer Directive = "MAINTAINER"
)

var knownDirectives = map[Directive]struct{}{
	DirectiveFrom:        {},
	DirectiveRun:         {},
	DirectiveCopy:        {},
	DirectiveAdd:         {},
	DirectiveEnv:         {},
	DirectiveCmd:         {},
	DirectiveEntrypoint:  {},
	DirectiveWorkdir:     {},
	DirectiveLabel:       {},
	DirectiveExpose:      {},
	DirectiveVolume:      {},
	DirectiveUser:        {},
	DirectiveArg:         {},
	DirectiveOnbuild:     {},
	DirectiveStopSignal:  {},
	DirectiveHealthcheck: {},
	DirectiveShell:       {},
	DirectiveMaintainer:  {},
}

// ParseDirective matches a keyword against the allow-list, ignoring case.
func ParseDirective(keyword string) (Directive, bool) {
	directive := Directive(strings.ToUpper(strings.TrimSpace(keyword)))
	if _, ok := knownDirectives[directive]; !ok {
		return "", false
	}
	return directive, true
}

type LayerKind string

const (
	LayerKindOS         LayerKind = "OS"
	LayerKindLanguage   LayerKind = "LANGUAGE"
	LayerKindDependency LayerKind = "DEPENDENCY"
	LayerKindOperation  LayerKind = "OPERATION"
)

type ManifestFormat string

const (
	ManifestFormatPinnedLines       ManifestFormat = "pinned-lines"
	ManifestFormatJSONDependencyMap ManifestFormat = "json-dependency-map"
	ManifestFormatMavenPom          ManifestFormat = "maven-pom"
	ManifestFormatGeneric           ManifestFormat = "generic"
	// ManifestFormatUnsupported marks discovered files that are listed
	// but never extracted (build.gradle, Makefile).
	ManifestFormatUnsupported ManifestFormat = "unsupported"
)

type Ecosystem string

const (
	EcosystemApt     Ecosystem = "apt"
	EcosystemPip     Ecosystem = "pip"
	EcosystemNpm     Ecosystem = "npm"
	EcosystemGem     Ecosystem = "gem"
	EcosystemMaven   Ecosystem = "maven"
	EcosystemGeneric Ecosystem = "generic"
)

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)
