package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
	"bidhouse-backend/internal/supabase"
)

// allowedImageMimes are the upload formats the frontend and the vision
// model both handle. AVIF in particular is rejected.
var allowedImageMimes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

var extensionMimes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// detectImageMime resolves the effective mime type from the declared
// content type, falling back to the filename extension, and rejects
// unsupported formats.
func detectImageMime(contentType, filename string) (string, error) {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if mime == "" || mime == "application/octet-stream" {
		mime = extensionMimes[strings.ToLower(path.Ext(filename))]
	}
	if mime == "" {
		return "", fmt.Errorf("could not determine image type")
	}
	if !allowedImageMimes[mime] {
		return "", fmt.Errorf("unsupported image type %s: use png, jpeg, gif or webp", mime)
	}
	return mime, nil
}

// ImageStore is the persistence surface image handlers operate on.
type ImageStore interface {
	GetItem(itemID uuid.UUID) (*models.Item, error)
	ListItemImages(itemID uuid.UUID) ([]models.ItemImage, error)
	NextImagePosition(itemID uuid.UUID) (int, error)
	AddItemImages(itemID uuid.UUID, urls []string, startPosition int) ([]models.ItemImage, error)
	UpdateImageURL(imageID int64, url string) (*models.ItemImage, error)
	UpdateImagePosition(imageID int64, position int) (*models.ItemImage, error)
}

type ImagesHandler struct {
	store   ImageStore
	storage *supabase.StorageClient
}

func NewImagesHandler(storeClient ImageStore, storage *supabase.StorageClient) *ImagesHandler {
	return &ImagesHandler{store: storeClient, storage: storage}
}

func (h *ImagesHandler) parseImageID(c *gin.Context) (int64, bool) {
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image_id"})
		return 0, false
	}
	return imageID, true
}

// AddImages appends image URLs after the item's current last position.
func (h *ImagesHandler) AddImages(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req models.AddItemImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "urls is required"})
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	existing, err := h.store.ListItemImages(itemID)
	if err != nil {
		respondReadError(c, err, "images")
		return
	}
	if len(existing)+len(req.URLs) > maxItemImages {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("items are limited to %d images", maxItemImages)})
		return
	}

	nextPosition, err := h.store.NextImagePosition(itemID)
	if err != nil {
		respondReadError(c, err, "images")
		return
	}

	images, err := h.store.AddItemImages(itemID, req.URLs, nextPosition)
	if err != nil {
		respondWriteError(c, err, "add images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id": itemID.String(),
		"images":  images,
	})
}

func (h *ImagesHandler) UpdateImageURL(c *gin.Context) {
	if _, ok := parseUUIDParam(c, "item_id"); !ok {
		return
	}
	imageID, ok := h.parseImageID(c)
	if !ok {
		return
	}

	var req models.UpdateImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url is required"})
		return
	}

	image, err := h.store.UpdateImageURL(imageID, req.URL)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
			return
		}
		respondWriteError(c, err, "update image")
		return
	}

	c.JSON(http.StatusOK, image)
}

// SetPrimary moves an image to position 1 and shifts the images that were
// ahead of it down one slot. Already-primary images are a no-op.
func (h *ImagesHandler) SetPrimary(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}
	imageID, ok := h.parseImageID(c)
	if !ok {
		return
	}

	images, err := h.store.ListItemImages(itemID)
	if err != nil {
		respondReadError(c, err, "images")
		return
	}

	var target *models.ItemImage
	for i := range images {
		if images[i].ImageID == imageID {
			target = &images[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
		return
	}

	if target.Position == 1 {
		c.JSON(http.StatusOK, gin.H{
			"message": "image is already primary",
			"image":   target,
		})
		return
	}

	for i := range images {
		if images[i].ImageID == imageID || images[i].Position >= target.Position {
			continue
		}
		if _, err := h.store.UpdateImagePosition(images[i].ImageID, images[i].Position+1); err != nil {
			respondWriteError(c, err, "reorder images")
			return
		}
	}

	updated, err := h.store.UpdateImagePosition(imageID, 1)
	if err != nil {
		respondWriteError(c, err, "set primary image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "primary image updated",
		"image":   updated,
	})
}

// Upload receives a multipart image, stores it in the storage bucket and
// records the public URL at the item's next position.
func (h *ImagesHandler) Upload(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "storage is not configured"})
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required", Message: err.Error()})
		return
	}

	mime, err := detectImageMime(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}
	defer file.Close()

	data := make([]byte, fileHeader.Size)
	if _, err := io.ReadFull(file, data); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), path.Ext(fileHeader.Filename))
	_, publicURL, err := h.storage.UploadItemImage(itemID, filename, mime, data)
	if err != nil {
		respondWriteError(c, err, "upload image")
		return
	}

	nextPosition, err := h.store.NextImagePosition(itemID)
	if err != nil {
		respondReadError(c, err, "images")
		return
	}
	images, err := h.store.AddItemImages(itemID, []string{publicURL}, nextPosition)
	if err != nil {
		respondWriteError(c, err, "save image record")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id": itemID.String(),
		"url":     publicURL,
		"image":   images[0],
	})
}
