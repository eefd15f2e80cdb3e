package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/handlers"
	"bidhouse-backend/internal/models"
)

type positionUpdate struct {
	imageID  int64
	position int
}

type fakeImageStore struct {
	item    *models.Item
	images  []models.ItemImage
	updates []positionUpdate
}

func (f *fakeImageStore) GetItem(itemID uuid.UUID) (*models.Item, error) {
	return f.item, nil
}

func (f *fakeImageStore) ListItemImages(itemID uuid.UUID) ([]models.ItemImage, error) {
	return f.images, nil
}

func (f *fakeImageStore) NextImagePosition(itemID uuid.UUID) (int, error) {
	return len(f.images) + 1, nil
}

func (f *fakeImageStore) AddItemImages(itemID uuid.UUID, urls []string, startPosition int) ([]models.ItemImage, error) {
	added := make([]models.ItemImage, len(urls))
	for i, url := range urls {
		added[i] = models.ItemImage{ItemID: itemID, URL: url, Position: startPosition + i}
	}
	return added, nil
}

func (f *fakeImageStore) UpdateImageURL(imageID int64, url string) (*models.ItemImage, error) {
	return &models.ItemImage{ImageID: imageID, URL: url}, nil
}

func (f *fakeImageStore) UpdateImagePosition(imageID int64, position int) (*models.ItemImage, error) {
	f.updates = append(f.updates, positionUpdate{imageID: imageID, position: position})
	return &models.ItemImage{ImageID: imageID, Position: position}, nil
}

func imagesRouter(storeClient handlers.ImageStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewImagesHandler(storeClient, nil)

	router := gin.New()
	router.PUT("/items/:item_id/images/:image_id/primary", handler.SetPrimary)
	return router
}

func itemWithImages(itemID uuid.UUID, count int) []models.ItemImage {
	images := make([]models.ItemImage, count)
	for i := range images {
		images[i] = models.ItemImage{
			ImageID:  int64(i + 1),
			ItemID:   itemID,
			URL:      fmt.Sprintf("https://img.example.com/%d.jpg", i+1),
			Position: i + 1,
		}
	}
	return images
}

func setPrimaryRequest(itemID uuid.UUID, imageID int64) *http.Request {
	path := fmt.Sprintf("/items/%s/images/%d/primary", itemID, imageID)
	return httptest.NewRequest(http.MethodPut, path, nil)
}

func TestSetPrimaryAlreadyPrimaryIsNoOp(t *testing.T) {
	itemID := uuid.New()
	storeClient := &fakeImageStore{images: itemWithImages(itemID, 3)}

	recorder := httptest.NewRecorder()
	imagesRouter(storeClient).ServeHTTP(recorder, setPrimaryRequest(itemID, 1))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "already primary")
	assert.Empty(t, storeClient.updates)
}

func TestSetPrimaryShiftsEarlierImagesDown(t *testing.T) {
	itemID := uuid.New()
	storeClient := &fakeImageStore{images: itemWithImages(itemID, 3)}

	recorder := httptest.NewRecorder()
	imagesRouter(storeClient).ServeHTTP(recorder, setPrimaryRequest(itemID, 3))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []positionUpdate{
		{imageID: 1, position: 2},
		{imageID: 2, position: 3},
		{imageID: 3, position: 1},
	}, storeClient.updates)
}

func TestSetPrimaryLeavesLaterImagesAlone(t *testing.T) {
	itemID := uuid.New()
	storeClient := &fakeImageStore{images: itemWithImages(itemID, 3)}

	recorder := httptest.NewRecorder()
	imagesRouter(storeClient).ServeHTTP(recorder, setPrimaryRequest(itemID, 2))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []positionUpdate{
		{imageID: 1, position: 2},
		{imageID: 2, position: 1},
	}, storeClient.updates)
}

func TestSetPrimaryUnknownImage(t *testing.T) {
	itemID := uuid.New()
	storeClient := &fakeImageStore{images: itemWithImages(itemID, 2)}

	recorder := httptest.NewRecorder()
	imagesRouter(storeClient).ServeHTTP(recorder, setPrimaryRequest(itemID, 99))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, storeClient.updates)
}
