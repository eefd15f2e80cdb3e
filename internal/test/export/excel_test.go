package export_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"bidhouse-backend/internal/export"
	"bidhouse-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestAuctionWorkbook(t *testing.T) {
	itemA := models.Item{ItemID: uuid.New(), Title: "Brass clock", Brand: "Seth Thomas", Model: "Adamantine", Year: intPtr(1905)}
	itemB := models.Item{ItemID: uuid.New(), Title: "Oak dresser", Brand: "Unknown", Model: "Unknown"}

	data, err := export.AuctionWorkbook(
		[]models.Item{itemA, itemB},
		map[uuid.UUID]string{itemA.ItemID: "https://cdn.example/clock.jpg"},
	)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	assert.NoError(t, err)
	if assert.Len(t, rows, 3) {
		assert.Equal(t, []string{"Title", "Brand", "Model", "Year", "Image 1 URL"}, rows[0])
		assert.Equal(t, "Brass clock", rows[1][0])
		assert.Equal(t, "1905", rows[1][3])
		assert.Equal(t, "https://cdn.example/clock.jpg", rows[1][4])
		// Item without a year or a primary image leaves those cells empty.
		assert.Equal(t, "Oak dresser", rows[2][0])
	}
}

func TestAuctionWorkbook_NoItems(t *testing.T) {
	data, err := export.AuctionWorkbook(nil, nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWorkbookFilename(t *testing.T) {
	assert.Equal(t, "Spring Estate Sale.xlsx", export.WorkbookFilename("Spring Estate Sale"))
	assert.Equal(t, "auction.xlsx", export.WorkbookFilename(""))
	assert.Equal(t, "a_b_c.xlsx", export.WorkbookFilename(`a/b"c`))
}
