// Package export renders the senior master list and the audit trail as XLSX
// workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/mapatag/internal/models"
)

// Sheet names.
const (
	MasterListSheet = "Master List"
	AuditTrailSheet = "Audit Trail"
)

var masterListHeader = []string{
	"SCID", "Full Name", "Birthdate", "Age", "Sex", "Civil Status", "Purok",
	"Address", "Contact", "Emergency Contact", "Emergency Phone", "Conditions",
	"Date Registered",
}

var masterListWidths = []float64{14, 28, 12, 6, 8, 12, 10, 30, 14, 24, 16, 30, 15}

var auditTrailHeader = []string{"Timestamp", "User", "Action", "Details"}

var auditTrailWidths = []float64{20, 22, 20, 60}

// MasterList renders one row per senior in the given order.
func MasterList(seniors []models.SeniorRecord) ([]byte, error) {
	rows := make([][]any, 0, len(seniors))
	for _, s := range seniors {
		rows = append(rows, []any{
			s.SCID,
			s.FullName,
			s.Birthdate,
			s.Age,
			string(s.Sex),
			string(s.CivilStatus),
			s.Purok,
			s.Address,
			s.Contact,
			s.EmergencyContact.Name,
			s.EmergencyContact.Phone,
			strings.Join(s.MedicalInfo.Conditions, ", "),
			s.DateRegistered,
		})
	}
	return workbook(MasterListSheet, masterListHeader, masterListWidths, rows)
}

// AuditTrail renders the audit log, newest first as stored.
func AuditTrail(logs []models.AuditLogEntry) ([]byte, error) {
	rows := make([][]any, 0, len(logs))
	for _, e := range logs {
		rows = append(rows, []any{
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.UserName,
			e.Action,
			e.Details,
		})
	}
	return workbook(AuditTrailSheet, auditTrailHeader, auditTrailWidths, rows)
}

// FileName builds a timestamped file name such as
// mapatag-masterlist-20261017-1030.xlsx.
func FileName(kind string, now time.Time) string {
	return fmt.Sprintf("mapatag-%s-%s.xlsx", kind, now.Format("20060102-1504"))
}

func workbook(sheet string, header []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if col < len(widths) {
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
