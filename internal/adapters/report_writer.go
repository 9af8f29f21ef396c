package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"dockerfile-analyzer/internal/ports"
	"dockerfile-analyzer/internal/types"
)

// ReportWriterAdapter writes reports to Path, or to Out when Path is empty.
type ReportWriterAdapter struct {
	Path string
	Out  io.Writer
}

func NewReportWriterAdapter(path string, out io.Writer) ReportWriterAdapter {
	return ReportWriterAdapter{Path: path, Out: out}
}

func (a ReportWriterAdapter) WriteReport(report types.Report, format types.OutputFormat) error {
	content, err := renderReport(report, format)
	if err != nil {
		return err
	}
	if strings.TrimSpace(a.Path) == "" {
		if a.Out == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("report destination is empty")
		}
		_, err := a.Out.Write(content)
		return err
	}
	if dir := filepath.Dir(a.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(a.Path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

func renderReport(report types.Report, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.OutputFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode report").
				WithCause(err)
		}
		return append(data, '\n'), nil
	case types.OutputFormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode report").
				WithCause(err)
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case types.OutputFormatText, "":
		return renderText(report), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", format))
	}
}

func renderText(report types.Report) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "build file: %s\n", report.BuildFile)
	writeList(&b, "OS", report.OS)
	writeList(&b, "Language", report.Language)
	writeList(&b, "Dependencies", report.Dependencies)
	fmt.Fprintf(&b, "Operations: %d\n", len(report.Operations))
	for _, op := range report.Operations {
		fmt.Fprintf(&b, "- %s %s\n", op.Directive, op.Argument)
	}
	if len(report.Manifests) > 0 {
		writeList(&b, "Manifests", report.Manifests)
	}
	if len(report.MissingManifests) > 0 {
		writeList(&b, "Missing manifests", report.MissingManifests)
	}
	if len(report.Diagnostics) > 0 {
		writeList(&b, "Diagnostics", report.Diagnostics)
	}
	return []byte(b.String())
}

func writeList(b *strings.Builder, title string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s: %s\n", title, strings.Join(values, ", "))
}

var _ ports.ReportWriterPort = ReportWriterAdapter{}
