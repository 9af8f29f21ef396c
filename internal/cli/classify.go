package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dockerfile-analyzer/internal/adapters"
	"dockerfile-analyzer/internal/app"
	"dockerfile-analyzer/internal/types"
)

type classifyOptions struct {
	Manifests []string
	Scan      bool
	Format    string
	Output    string
}

func newClassifyCommand() *cobra.Command {
	opts := classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify [PATH]",
		Short: "Classify a Dockerfile into OS, language, dependency and operation layers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), cmd, pathArgument(args), opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Manifests, "manifest", nil, "Additional manifest files")
	cmd.Flags().BoolVar(&opts.Scan, "scan", false, "Scan the build directory for manifest files")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Report format (text, json, yaml)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Report file (defaults to stdout)")

	_ = viper.BindPFlag("classify.manifests", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("classify.scan", cmd.Flags().Lookup("scan"))
	_ = viper.BindPFlag("classify.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("classify.output", cmd.Flags().Lookup("output"))
	return cmd
}

func runClassify(ctx context.Context, cmd *cobra.Command, path string, opts classifyOptions) error {
	service := newAppService()
	result, err := service.Classify(ctx, app.ClassifyRequest{
		Path:        path,
		Manifests:   resolveStrings(cmd, opts.Manifests, "classify.manifests", "manifest"),
		ScanProject: resolveBool(cmd, opts.Scan, "classify.scan", "scan"),
	})
	if err != nil {
		return err
	}
	format := types.OutputFormat(strings.ToLower(resolveString(cmd, opts.Format, "classify.format", "format")))
	writer := adapters.NewReportWriterAdapter(resolveString(cmd, opts.Output, "classify.output", "output"), cmd.OutOrStdout())
	return writer.WriteReport(result.Report, format)
}

func pathArgument(args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "."
	}
	return args[0]
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
