package service

import (
	"fmt"
	"io"

	"github.com/risegum/internal/db"
	"github.com/xuri/excelize/v2"
)

const waitlistSheetName = "Waitlist"

var waitlistExportHeader = []interface{}{"ID", "Name", "Email", "City", "Status", "Source", "Joined (UTC)"}

// ExportWaitlist writes the given entries as an .xlsx workbook.
func ExportWaitlist(w io.Writer, entries []db.WaitlistEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", waitlistSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := waitlistExportHeader
	if err := f.SetSheetRow(waitlistSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		row := []interface{}{
			entry.ID,
			entry.Name,
			entry.Email,
			entry.City,
			entry.Status,
			entry.Source,
			entry.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(waitlistSheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(waitlistSheetName, "A", "G", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
