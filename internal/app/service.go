package app

import (
	"dockerfile-analyzer/internal/adapters"
	"dockerfile-analyzer/internal/policies"
	"dockerfile-analyzer/internal/ports"
)

type Service struct {
	Parser    ports.DirectiveParserPort
	Workspace ports.WorkspacePort
	Files     ports.FileProbePort
	Manifests ports.ManifestReaderPort
	Policy    ports.ManifestPolicyPort
	Scripts   ports.ScriptParserPort
}

func NewService() Service {
	workspace := adapters.NewWorkspaceAdapter()
	return Service{
		Parser:    adapters.NewDockerfileParserAdapter(),
		Workspace: workspace,
		Files:     workspace,
		Manifests: adapters.NewManifestFileAdapter(),
		Policy:    policies.NewManifestPolicy(),
	}
}

// WithScriptParser returns a copy of the service that hands RUN bodies to
// parser when building the AST view.
func (s Service) WithScriptParser(parser ports.ScriptParserPort) Service {
	s.Scripts = parser
	return s
}
