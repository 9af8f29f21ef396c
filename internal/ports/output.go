package ports

import "dockerfile-analyzer/internal/types"

type ReportWriterPort interface {
	WriteReport(report types.Report, format types.OutputFormat) error
}
