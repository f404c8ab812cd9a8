package services

import (
	"context"
	"io"
)

// ExportFormat names a supported export file type.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportSvc writes the account list as a downloadable file.
type ExportSvc interface {
	// ExportAccounts writes every account followed by the totals to w.
	ExportAccounts(ctx context.Context, format ExportFormat, w io.Writer) error
	// ContentType returns the MIME type of format.
	ContentType(format ExportFormat) string
}
