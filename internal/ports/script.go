package ports

import (
	"context"

	"dockerfile-analyzer/internal/types"
)

// ScriptParserPort parses a shell string embedded in a RUN directive into
// a generic syntax tree. Implementations never fail: anything they cannot
// parse comes back as a node of type types.ScriptNodeUnknown.
type ScriptParserPort interface {
	ParseEmbeddedScript(ctx context.Context, text string) types.ScriptNode
}
