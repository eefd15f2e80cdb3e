// Package export renders auction inventory as spreadsheet downloads.
package export

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"bidhouse-backend/internal/models"
)

const sheetName = "Items"

var headerRow = []any{"Title", "Brand", "Model", "Year", "Image 1 URL"}

// AuctionWorkbook renders one row per item with its primary image URL and
// returns the serialized .xlsx bytes. Items missing from primaryImageURL get
// an empty image cell.
func AuctionWorkbook(items []models.Item, primaryImageURL map[uuid.UUID]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		var year any
		if item.Year != nil {
			year = *item.Year
		} else {
			year = ""
		}
		row := []any{item.Title, item.Brand, item.Model, year, primaryImageURL[item.ItemID]}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WorkbookFilename builds the download name from the auction's display name,
// replacing characters that break Content-Disposition headers.
func WorkbookFilename(auctionName string) string {
	name := auctionName
	if name == "" {
		name = "auction"
	}
	sanitized := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			sanitized = append(sanitized, '_')
		default:
			sanitized = append(sanitized, r)
		}
	}
	return string(sanitized) + ".xlsx"
}
