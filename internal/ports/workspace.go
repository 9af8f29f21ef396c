package ports

import (
	"context"

	"dockerfile-analyzer/internal/types"
)

// DirectiveParserPort turns build-file text into ordered instructions.
type DirectiveParserPort interface {
	Parse(ctx context.Context, text string) ([]types.Instruction, error)
	ParseFile(ctx context.Context, path string) ([]types.Instruction, error)
}

// WorkspacePort locates build files and dependency manifests on disk.
type WorkspacePort interface {
	// FindBuildFile returns path itself when it is a file, otherwise the
	// first file named Dockerfile (any case) below it.
	FindBuildFile(path string) (string, error)

	// FindManifests returns every known manifest file below root.
	FindManifests(root string) ([]string, error)
}

// ManifestReaderPort loads raw manifest contents.
type ManifestReaderPort interface {
	ReadManifest(path string) ([]byte, error)
}

// FileProbePort answers whether a regular file exists at path.
type FileProbePort interface {
	Exists(path string) bool
}
