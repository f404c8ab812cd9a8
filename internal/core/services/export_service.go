package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/listing"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/utils"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Accounts"

var exportHeaders = []string{"ID", "Date", "Description", "Type", "Paid", "Status", "Amount", "Signed amount"}

type exportService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewExportService creates the CSV/XLSX export service.
func NewExportService(repo portsrepo.AccountReader) portssvc.ExportSvc {
	return &exportService{accountRepo: repo}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) ContentType(format portssvc.ExportFormat) string {
	switch format {
	case portssvc.ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

func (s *exportService) ExportAccounts(ctx context.Context, format portssvc.ExportFormat, w io.Writer) error {
	if format != portssvc.ExportCSV && format != portssvc.ExportXLSX {
		return fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	list := listing.New(s.accountRepo)
	if err := list.Load(ctx); err != nil {
		s.LogError(ctx, err, "Failed to load accounts for export")
		return err
	}
	overview := list.Overview()

	var err error
	if format == portssvc.ExportXLSX {
		err = writeXLSX(overview, w)
	} else {
		err = writeCSV(overview, w)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to write export", "format", string(format))
		return err
	}

	s.LogInfo(ctx, "Accounts exported", "format", string(format), "accounts", len(overview.Accounts))
	return nil
}

func accountRow(acc domain.Account) []string {
	return []string{
		strconv.FormatInt(acc.ID, 10),
		utils.FormatDate(acc.Date),
		acc.Description,
		string(acc.Type),
		strconv.FormatBool(acc.Paid),
		string(acc.Status()),
		utils.FormatAmount(acc.Amount),
		utils.FormatSignedAmount(acc),
	}
}

func totalRows(o domain.AccountsOverview) [][]string {
	return [][]string{
		{"Balance", utils.FormatAmount(o.Balance)},
		{"Projection", utils.FormatAmount(o.Projection)},
		{"Expected balance", utils.FormatAmount(o.ExpectedBalance)},
	}
}

func writeCSV(o domain.AccountsOverview, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, acc := range o.Accounts {
		if err := cw.Write(accountRow(acc)); err != nil {
			return fmt.Errorf("write csv row %d: %w", acc.ID, err)
		}
	}
	// Totals follow a blank line.
	if err := cw.Write([]string{}); err != nil {
		return fmt.Errorf("write csv separator: %w", err)
	}
	if err := cw.WriteAll(totalRows(o)); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}
	return cw.Error()
}

func writeXLSX(o domain.AccountsOverview, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(exportSheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, acc := range o.Accounts {
		amount, _ := acc.Amount.Float64()
		signed, _ := acc.SignedAmount().Float64()
		values := []any{acc.ID, utils.FormatDate(acc.Date), acc.Description, string(acc.Type), acc.Paid, string(acc.Status()), amount, signed}
		if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	row++
	for _, total := range totalRows(o) {
		values := []any{total[0], total[1]}
		if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("write totals row %d: %w", row, err)
		}
		row++
	}

	widths := map[string]float64{"A": 8, "B": 12, "C": 30, "D": 10, "E": 8, "F": 14, "G": 12, "H": 14}
	for col, width := range widths {
		if err := f.SetColWidth(exportSheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
