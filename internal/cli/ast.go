package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dockerfile-analyzer/internal/adapters"
	"dockerfile-analyzer/internal/app"
)

type astOptions struct {
	ParseScripts  bool
	ScriptParser  string
	ScriptFilters []string
}

func newASTCommand() *cobra.Command {
	opts := astOptions{}
	cmd := &cobra.Command{
		Use:   "ast [PATH]",
		Short: "Print the FROM/RUN syntax tree of a Dockerfile as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd.Context(), cmd, pathArgument(args), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.ParseScripts, "parse-scripts", false, "Parse RUN bodies with the external script parser")
	cmd.Flags().StringVar(&opts.ScriptParser, "script-parser", "", "Shell script parser binary")
	cmd.Flags().StringSliceVar(&opts.ScriptFilters, "script-filter", nil, "jq filter files applied to the parser output, in order")

	_ = viper.BindPFlag("ast.parse_scripts", cmd.Flags().Lookup("parse-scripts"))
	_ = viper.BindPFlag("ast.script_parser", cmd.Flags().Lookup("script-parser"))
	_ = viper.BindPFlag("ast.script_filters", cmd.Flags().Lookup("script-filter"))
	return cmd
}

func runAST(ctx context.Context, cmd *cobra.Command, path string, opts astOptions) error {
	parser := adapters.NewScriptParserAdapter(
		resolveString(cmd, opts.ScriptParser, "ast.script_parser", "script-parser"),
		resolveStrings(cmd, opts.ScriptFilters, "ast.script_filters", "script-filter"),
	)
	service := newAppService().WithScriptParser(parser)
	tree, err := service.AST(ctx, app.ASTRequest{
		Path:         path,
		ParseScripts: resolveBool(cmd, opts.ParseScripts, "ast.parse_scripts", "parse-scripts"),
	})
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(tree)
}
