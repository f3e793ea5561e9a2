package infra

// xlsx.go: pricing history export. One sheet, one row per priced unit of
// each window, newest window first (the order the caller passes them in).

import (
	"bytes"
	"fmt"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const prixSheet = "Historique"

var prixHistoriqueHeader = []string{
	"Type de prix",
	"Date de début",
	"Date de fin",
	"UG",
	"Prix m² an 1",
	"Prix m² an 2",
	"Prix m² an 3",
	"Prix m²",
	"Charges m²",
}

// PrixHistoriqueXLSX renders the pricing windows of one building as a workbook.
// ugNoms maps ug ids to display names; unknown ids are written as-is.
func PrixHistoriqueXLSX(periodes []dto.PeriodePrixResponse, ugNoms map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(prixSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for col, h := range prixHistoriqueHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(prixSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: header %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(prixSheet, "A1", "I1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: apply header style: %w", err)
	}
	if err := f.SetColWidth(prixSheet, "A", "I", 16); err != nil {
		return nil, err
	}

	row := 2
	for _, p := range periodes {
		fin := ""
		if p.DateFin != nil {
			fin = *p.DateFin
		}
		for _, l := range p.Lignes {
			nom, ok := ugNoms[l.UGID]
			if !ok {
				nom = l.UGID
			}
			values := []interface{}{
				p.TypePrix,
				p.DateDebut,
				fin,
				nom,
				decimalCell(l.PrixM2An1),
				decimalCell(l.PrixM2An2),
				decimalCell(l.PrixM2An3),
				decimalCell(l.PrixM2),
				l.ChargesM2.InexactFloat64(),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(prixSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("xlsx: row %d: %w", row, err)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalCell leaves the cell empty for rates that do not apply to the type.
func decimalCell(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
