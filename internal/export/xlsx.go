// Package export writes a cart snapshot as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/i18n"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes one header row and one row per cart line, in cart order.
// Header labels and the sheet name follow lang.
func WriteXLSX(w io.Writer, items []cart.Item, lang language.Tag) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.Text(lang, i18n.KeyExportSheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	header := []interface{}{
		i18n.Text(lang, i18n.KeyExportID),
		i18n.Text(lang, i18n.KeyExportName),
		i18n.Text(lang, i18n.KeyExportQuantity),
		i18n.Text(lang, i18n.KeyExportImage),
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{it.ID, it.Name, it.Quantity, it.ImageURL}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
