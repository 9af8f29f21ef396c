package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dockerfile-analyzer/internal/types"
)

type stubScriptParser struct {
	seen []string
}

func (s *stubScriptParser) ParseEmbeddedScript(_ context.Context, text string) types.ScriptNode {
	s.seen = append(s.seen, text)
	return types.ScriptNode{Type: "BASH-SCRIPT", Children: []types.ScriptNode{}}
}

func TestASTBuildsDockerFileTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Dockerfile"), "FROM docker.io/library/python:3.9\nENV A=b\nRUN echo hi\nFROM alpine\n")

	tree, err := NewService().AST(t.Context(), ASTRequest{Path: dir})
	require.NoError(t, err)

	leaf := func(nodeType string, value string) types.ScriptNode {
		return types.ScriptNode{Type: nodeType, Value: value, Children: []types.ScriptNode{}}
	}
	want := types.ScriptNode{
		Type: "DOCKER-FILE",
		Children: []types.ScriptNode{
			{
				Type: "DOCKER-FROM",
				Children: []types.ScriptNode{
					leaf("DOCKER-IMAGE-NAME", "python"),
					leaf("DOCKER-IMAGE-REPO", "docker.io/library"),
					leaf("DOCKER-IMAGE-TAG", "3.9"),
				},
			},
			{
				Type:     "DOCKER-RUN",
				Children: []types.ScriptNode{leaf("MAYBE-BASH", "echo hi")},
			},
			{
				Type:     "DOCKER-FROM",
				Children: []types.ScriptNode{leaf("DOCKER-IMAGE-NAME", "alpine")},
			},
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestASTParsesEmbeddedScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Dockerfile"), "FROM alpine\nRUN make && make install\n")

	parser := &stubScriptParser{}
	service := NewService().WithScriptParser(parser)

	tree, err := service.AST(t.Context(), ASTRequest{Path: dir, ParseScripts: true})
	require.NoError(t, err)
	require.Equal(t, []string{"make && make install"}, parser.seen)
	script := tree.Children[1].Children[0]
	require.Equal(t, "MAYBE-BASH", script.Type)
	require.Len(t, script.Children, 1)
	require.Equal(t, "BASH-SCRIPT", script.Children[0].Type)

	tree, err = service.AST(t.Context(), ASTRequest{Path: dir})
	require.NoError(t, err)
	require.Empty(t, tree.Children[1].Children[0].Children)
	require.Len(t, parser.seen, 1)
}

func TestTablesListsVersionRows(t *testing.T) {
	entries := NewService().Tables()
	require.NotEmpty(t, entries)
	found := false
	for _, entry := range entries {
		if entry.Language == "python" && entry.Platform == "alpine" {
			found = true
			require.Equal(t, []string{"3.7", "3.9", "3.10"}, entry.SupportedVersions)
		}
	}
	require.True(t, found)
}
