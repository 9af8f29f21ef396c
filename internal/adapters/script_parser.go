package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"dockerfile-analyzer/internal/ports"
	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

// ScriptParserAdapter shells out to an external shell-script parser and
// reshapes its output with a chain of jq filter files.
type ScriptParserAdapter struct {
	Binary  string
	JQ      string
	Filters []string
}

func NewScriptParserAdapter(binary string, filters []string) ScriptParserAdapter {
	return ScriptParserAdapter{
		Binary:  binary,
		JQ:      "jq",
		Filters: append([]string(nil), filters...),
	}
}

func (a ScriptParserAdapter) ParseEmbeddedScript(ctx context.Context, text string) types.ScriptNode {
	if strings.TrimSpace(a.Binary) == "" {
		return unknownScriptNode()
	}
	output, err := runWithInput(ctx, []byte(text), a.Binary)
	if err != nil {
		log.Debug().Err(err).Str("binary", a.Binary).Msg("script parser failed")
		return unknownScriptNode()
	}
	jq := a.JQ
	if jq == "" {
		jq = "jq"
	}
	for _, filter := range a.Filters {
		output, err = runWithInput(ctx, output, jq, "-c", "--from-file", filter)
		if err != nil {
			log.Debug().Err(err).Str("filter", filter).Msg("script filter failed")
			return unknownScriptNode()
		}
	}
	var node types.ScriptNode
	if err := json.Unmarshal(output, &node); err != nil || node.Type == "" {
		log.Debug().Err(err).Msg("script parser returned unusable output")
		return unknownScriptNode()
	}
	if node.Children == nil {
		node.Children = []types.ScriptNode{}
	}
	return node
}

func runWithInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, shared.CommandError(stderr.Bytes(), err)
	}
	return output, nil
}

func unknownScriptNode() types.ScriptNode {
	return types.ScriptNode{Type: types.ScriptNodeUnknown, Children: []types.ScriptNode{}}
}

var _ ports.ScriptParserPort = ScriptParserAdapter{}
