package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

const sampleDockerfile = `FROM python:3.9-alpine AS base
# install tooling
RUN apt-get update && \
    apt-get install -y curl
COPY --chown=app:app . /app
maintainer someone@example.com
CMD ["python", "app.py"]
`

func TestDockerfileParserAdapterParse(t *testing.T) {
	instructions, err := NewDockerfileParserAdapter().Parse(t.Context(), sampleDockerfile)
	require.NoError(t, err)
	require.Len(t, instructions, 5)

	directives := make([]types.Directive, 0, len(instructions))
	for _, instruction := range instructions {
		directives = append(directives, instruction.Directive)
	}
	assert.Equal(t, []types.Directive{
		types.DirectiveFrom,
		types.DirectiveRun,
		types.DirectiveCopy,
		types.DirectiveMaintainer,
		types.DirectiveCmd,
	}, directives)

	assert.Equal(t, "python:3.9-alpine AS base", instructions[0].Argument)
	assert.Equal(t, 1, instructions[0].Line)
	assert.Equal(t, "apt-get update && apt-get install -y curl", strings.Join(strings.Fields(instructions[1].Argument), " "))
	assert.Equal(t, 3, instructions[1].Line)
	assert.Equal(t, ". /app", instructions[2].Argument)
	assert.Equal(t, []string{"--chown=app:app"}, instructions[2].Flags)
	assert.Equal(t, `["python", "app.py"]`, instructions[4].Argument)
}

func TestDockerfileParserAdapterRejectsUnknownDirective(t *testing.T) {
	_, err := NewDockerfileParserAdapter().Parse(t.Context(), "FROM alpine\nFOO bar\n")
	require.Error(t, err)
	assert.True(t, shared.IsMalformedBuildFile(err))
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid directive FOO on line 2")
}

func TestDockerfileParserAdapterParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM ubuntu:22.04\nWORKDIR /src\n"), 0644))

	adapter := NewDockerfileParserAdapter()
	instructions, err := adapter.ParseFile(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, instructions, 2)
	assert.Equal(t, "/src", instructions[1].Argument)

	_, err = adapter.ParseFile(t.Context(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
