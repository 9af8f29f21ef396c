package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dockerfile-analyzer/internal/ports"
)

// knownManifestNames are the manifest files picked up by a project scan.
var knownManifestNames = map[string]struct{}{
	"requirements.txt": {},
	"package.json":     {},
	"pom.xml":          {},
	"build.gradle":     {},
	"Makefile":         {},
}

var errStopWalk = errors.New("stop walk")

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

func (a WorkspaceAdapter) FindBuildFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build file path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("build file not found").
			WithCause(err)
	}
	if !info.IsDir() {
		return path, nil
	}
	var found string
	err = filepath.WalkDir(path, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if current != path && shouldSkipProjectDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(d.Name(), "dockerfile") {
			found = current
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan project").
			WithCause(err)
	}
	if found == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no Dockerfile found in " + path)
	}
	return found, nil
}

func (a WorkspaceAdapter) FindManifests(root string) ([]string, error) {
	var paths []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is empty")
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipProjectDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := knownManifestNames[d.Name()]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan project").
			WithCause(err)
	}
	return paths, nil
}

func (a WorkspaceAdapter) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func shouldSkipProjectDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", "target", "build", "dist", ".venv", "venv", "__pycache__":
		return true
	default:
		return false
	}
}

var (
	_ ports.WorkspacePort = WorkspaceAdapter{}
	_ ports.FileProbePort = WorkspaceAdapter{}
)
