package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/rs/zerolog/log"

	"dockerfile-analyzer/internal/ports"
	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

// DockerfileParserAdapter delegates tokenizing to the buildkit Dockerfile
// parser and enforces the directive allow-list on its output.
type DockerfileParserAdapter struct{}

func NewDockerfileParserAdapter() DockerfileParserAdapter {
	return DockerfileParserAdapter{}
}

func (a DockerfileParserAdapter) ParseFile(ctx context.Context, path string) ([]types.Instruction, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read build file").
			WithCause(err)
	}
	return a.Parse(ctx, string(content))
}

func (a DockerfileParserAdapter) Parse(ctx context.Context, text string) ([]types.Instruction, error) {
	result, err := parser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, shared.MalformedBuildFile("", err)
	}
	if len(result.Warnings) > 0 {
		log.Ctx(ctx).Debug().Int("warnings", len(result.Warnings)).Msg("build file parsed with warnings")
	}
	instructions := make([]types.Instruction, 0, len(result.AST.Children))
	for _, node := range result.AST.Children {
		directive, ok := types.ParseDirective(node.Value)
		if !ok {
			return nil, shared.MalformedBuildFile(
				fmt.Sprintf("invalid directive %s on line %d", directiveKeyword(node), node.StartLine),
				nil,
			)
		}
		instructions = append(instructions, types.Instruction{
			Directive: directive,
			Argument:  instructionArgument(node),
			Line:      node.StartLine,
			Flags:     append([]string(nil), node.Flags...),
		})
	}
	return instructions, nil
}

// directiveKeyword returns the keyword as written in the file.
func directiveKeyword(node *parser.Node) string {
	fields := strings.Fields(node.Original)
	if len(fields) == 0 {
		return strings.ToUpper(node.Value)
	}
	return fields[0]
}

// instructionArgument returns the logical line with the directive keyword
// and any leading --flags removed.
func instructionArgument(node *parser.Node) string {
	rest := strings.TrimSpace(node.Original)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, directiveKeyword(node)))
	for i := 0; i < len(node.Flags); i++ {
		if !strings.HasPrefix(rest, "--") {
			break
		}
		end := strings.IndexFunc(rest, isSpace)
		if end < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[end:])
	}
	if rest == "" {
		return joinNodeValues(node.Next)
	}
	return rest
}

func joinNodeValues(node *parser.Node) string {
	var values []string
	for n := node; n != nil; n = n.Next {
		values = append(values, n.Value)
	}
	return strings.Join(values, " ")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

var _ ports.DirectiveParserPort = DockerfileParserAdapter{}
