package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dockerfile-analyzer/internal/core"
	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

func (s Service) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return ClassifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build file path is required")
	}
	buildFile, err := s.Workspace.FindBuildFile(path)
	if err != nil {
		return ClassifyResult{}, err
	}
	instructions, err := s.Parser.ParseFile(ctx, buildFile)
	if err != nil {
		return ClassifyResult{}, err
	}
	instructions = core.ExpandBuildArgs(instructions)

	buildDir := filepath.Dir(buildFile)
	classifier := core.NewLayerClassifier(s.Files)
	classification := classifier.Classify(ctx, instructions, buildDir)

	manifests, err := s.collectManifests(classification, req, buildDir)
	if err != nil {
		return ClassifyResult{}, err
	}

	records := make([]types.DependencyRecord, 0, len(classification.LayerDependencies)+len(classification.ScriptDependencies))
	records = append(records, classification.LayerDependencies...)
	records = append(records, classification.ScriptDependencies...)
	diagnostics := append([]string(nil), classification.Diagnostics...)

	extractor := core.NewManifestExtractor()
	present := make([]types.ManifestFile, 0, len(manifests))
	for _, manifest := range manifests {
		data, err := s.Manifests.ReadManifest(manifest.Path)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("manifest", manifest.Path).Msg("manifest skipped")
			diagnostics = append(diagnostics, fmt.Sprintf("manifest %s could not be read", manifest.Path))
			continue
		}
		present = append(present, manifest)
		extracted, err := extractor.ExtractFile(manifest, data)
		if err != nil {
			if !shared.IsManifestParseError(err) {
				return ClassifyResult{}, err
			}
			log.Ctx(ctx).Warn().Err(err).Str("manifest", manifest.Path).Msg("manifest skipped")
			diagnostics = append(diagnostics, diagnosticMessage(err))
			continue
		}
		log.Ctx(ctx).Debug().
			Str("manifest", manifest.Path).
			Int("dependencies", len(extracted)).
			Msg("manifest extracted")
		records = append(records, extracted...)
	}

	merged := core.NewDependencyMerger().Merge(ctx, records)
	var missing []string
	if s.Policy != nil {
		missing = s.Policy.Missing(classification.Languages, present)
	}

	classification.Manifests = present
	classification.Diagnostics = diagnostics
	report := buildReport(buildFile, classification, merged, missing)
	return ClassifyResult{Report: report, Classification: classification}, nil
}

// collectManifests builds the per-request manifest set: files referenced
// by RUN, then explicit paths, then (optionally) a scan of the build
// directory. Entries are deduplicated by absolute path.
func (s Service) collectManifests(classification types.Classification, req ClassifyRequest, buildDir string) ([]types.ManifestFile, error) {
	language := ""
	if len(classification.Languages) > 0 {
		language = classification.Languages[0]
	}
	seen := map[string]struct{}{}
	var manifests []types.ManifestFile
	add := func(manifest types.ManifestFile) {
		key := manifest.Path
		if abs, err := filepath.Abs(manifest.Path); err == nil {
			key = abs
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		manifests = append(manifests, manifest)
	}

	for _, manifest := range classification.Manifests {
		add(manifest)
	}
	for _, path := range req.Manifests {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		add(core.ManifestForPath(path, language))
	}
	if req.ScanProject {
		found, err := s.Workspace.FindManifests(buildDir)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(core.ManifestForPath(path, language))
		}
	}
	return manifests, nil
}

func buildReport(buildFile string, classification types.Classification, merged []types.DependencyRecord, missing []string) types.Report {
	report := types.Report{
		BuildFile:        buildFile,
		OS:               displayValues(classification.Layers.OS),
		Language:         displayValues(classification.Layers.Language),
		Dependencies:     make([]string, 0, len(merged)),
		Operations:       make([]types.Operation, 0, len(classification.Layers.Operations)),
		BaseImages:       classification.BaseImages,
		MissingManifests: missing,
		Diagnostics:      classification.Diagnostics,
	}
	for _, record := range merged {
		report.Dependencies = append(report.Dependencies, record.String())
	}
	for _, item := range classification.Layers.Operations {
		report.Operations = append(report.Operations, types.Operation{
			Directive: item.Source.Directive,
			Argument:  item.Value,
		})
	}
	for _, manifest := range classification.Manifests {
		report.Manifests = append(report.Manifests, manifest.Path)
	}
	return report
}

func displayValues(items []types.LayerItem) []string {
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Display())
	}
	return values
}

func diagnosticMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
