package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dockerfile-analyzer/internal/core"
	"dockerfile-analyzer/internal/types"
)

const (
	nodeDockerFile      = "DOCKER-FILE"
	nodeDockerRun       = "DOCKER-RUN"
	nodeMaybeBash       = "MAYBE-BASH"
	nodeDockerFrom      = "DOCKER-FROM"
	nodeDockerImageName = "DOCKER-IMAGE-NAME"
	nodeDockerImageRepo = "DOCKER-IMAGE-REPO"
	nodeDockerImageTag  = "DOCKER-IMAGE-TAG"
)

// AST renders the build file as a generic tree holding its FROM and RUN
// directives. With ParseScripts every RUN body is handed to the script
// parser and the result hangs below its MAYBE-BASH node.
func (s Service) AST(ctx context.Context, req ASTRequest) (types.ScriptNode, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return types.ScriptNode{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build file path is required")
	}
	buildFile, err := s.Workspace.FindBuildFile(path)
	if err != nil {
		return types.ScriptNode{}, err
	}
	instructions, err := s.Parser.ParseFile(ctx, buildFile)
	if err != nil {
		return types.ScriptNode{}, err
	}

	root := newNode(nodeDockerFile, "")
	for _, instruction := range instructions {
		switch instruction.Directive {
		case types.DirectiveRun:
			script := newNode(nodeMaybeBash, instruction.Argument)
			if req.ParseScripts && s.Scripts != nil {
				script.Children = append(script.Children, s.Scripts.ParseEmbeddedScript(ctx, instruction.Argument))
			}
			run := newNode(nodeDockerRun, "")
			run.Children = append(run.Children, script)
			root.Children = append(root.Children, run)
		case types.DirectiveFrom:
			root.Children = append(root.Children, fromNode(instruction))
		}
	}
	return root, nil
}

func fromNode(instruction types.Instruction) types.ScriptNode {
	node := newNode(nodeDockerFrom, "")
	fields := strings.Fields(instruction.Argument)
	if len(fields) == 0 {
		return node
	}
	ref := core.DecomposeImage(fields[0])
	node.Children = append(node.Children, newNode(nodeDockerImageName, ref.Name))
	if ref.HasRepository {
		node.Children = append(node.Children, newNode(nodeDockerImageRepo, ref.Repository))
	}
	if ref.HasTag {
		node.Children = append(node.Children, newNode(nodeDockerImageTag, ref.Tag))
	}
	return node
}

func newNode(nodeType string, value string) types.ScriptNode {
	return types.ScriptNode{Type: nodeType, Value: value, Children: []types.ScriptNode{}}
}
