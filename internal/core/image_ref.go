package core

import (
	"strings"

	"github.com/google/go-containerregistry/pkg/name"

	"dockerfile-analyzer/internal/types"
)

// DecomposeImage splits a FROM reference into repository, name and tag.
// Everything before the last "/" is the repository; in the remainder
// everything before the first ":" is the name and the rest the tag.
func DecomposeImage(raw string) types.ImageReference {
	raw = strings.TrimSpace(raw)
	ref := types.ImageReference{Name: raw}
	remainder := raw
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		ref.Repository = raw[:idx]
		ref.HasRepository = true
		remainder = raw[idx+1:]
	}
	ref.Name = remainder
	if idx := strings.Index(remainder, ":"); idx >= 0 {
		ref.Name = remainder[:idx]
		ref.Tag = remainder[idx+1:]
		ref.HasTag = true
	}
	return ref
}

// CanonicalImage returns the fully qualified form of raw, e.g.
// "python:3.9" -> "index.docker.io/library/python:3.9". It reports false
// for references the registry grammar rejects.
func CanonicalImage(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "scratch") {
		return "", false
	}
	ref, err := name.ParseReference(raw, name.WeakValidation)
	if err != nil {
		return "", false
	}
	return ref.Name(), true
}

func baseImage(raw string) types.BaseImage {
	ref := DecomposeImage(raw)
	image := types.BaseImage{
		Raw:        raw,
		Repository: ref.Repository,
		Name:       ref.Name,
		Tag:        ref.Tag,
	}
	if canonical, ok := CanonicalImage(raw); ok {
		image.Canonical = canonical
	}
	return image
}
