package adapters

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockerfile-analyzer/internal/types"
)

func requireBinary(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestScriptParserAdapterDecodesOutput(t *testing.T) {
	cat := requireBinary(t, "cat")
	adapter := NewScriptParserAdapter(cat, nil)

	got := adapter.ParseEmbeddedScript(t.Context(), `{"type":"BASH-SCRIPT","value":"echo hi"}`)
	want := types.ScriptNode{Type: "BASH-SCRIPT", Value: "echo hi", Children: []types.ScriptNode{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected node (-want +got):\n%s", diff)
	}
}

func TestScriptParserAdapterUnknownOnFailure(t *testing.T) {
	cat := requireBinary(t, "cat")
	unknown := types.ScriptNode{Type: types.ScriptNodeUnknown, Children: []types.ScriptNode{}}

	tests := []struct {
		name    string
		adapter ScriptParserAdapter
		input   string
	}{
		{"no binary configured", NewScriptParserAdapter("", nil), "echo hi"},
		{"missing binary", NewScriptParserAdapter(filepath.Join(t.TempDir(), "missing"), nil), "echo hi"},
		{"not json", NewScriptParserAdapter(cat, nil), "echo hi"},
		{"missing filter", NewScriptParserAdapter(cat, []string{filepath.Join(t.TempDir(), "none.jq")}), `{"type":"X"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.adapter.ParseEmbeddedScript(t.Context(), tt.input)
			if diff := cmp.Diff(unknown, got); diff != "" {
				t.Fatalf("unexpected node (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScriptParserAdapterAppliesFilters(t *testing.T) {
	cat := requireBinary(t, "cat")
	requireBinary(t, "jq")

	dir := t.TempDir()
	first := filepath.Join(dir, "filter-1.jq")
	second := filepath.Join(dir, "filter-2.jq")
	require.NoError(t, os.WriteFile(first, []byte(`{type: "BASH-SCRIPT", children: [{type: "COMMAND", value: .cmd, children: []}]}`), 0644))
	require.NoError(t, os.WriteFile(second, []byte(`.children[0].value |= ascii_upcase`), 0644))

	got := NewScriptParserAdapter(cat, []string{first, second}).ParseEmbeddedScript(t.Context(), `{"cmd":"make"}`)
	assert.Equal(t, "BASH-SCRIPT", got.Type)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "MAKE", got.Children[0].Value)
}
