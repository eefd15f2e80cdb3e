package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/openai"
)

type DescribeHandler struct {
	openai *openai.Client
}

func NewDescribeHandler(openaiClient *openai.Client) *DescribeHandler {
	return &DescribeHandler{openai: openaiClient}
}

// Simple generates a listing description from typed item facts.
func (h *DescribeHandler) Simple(c *gin.Context) {
	var req models.SimpleDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title is required"})
		return
	}

	description, err := h.openai.GenerateListingDescription(openai.DescriptionInput{
		Title: req.Title,
		Brand: req.Brand,
		Year:  req.Year,
		Notes: req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "description generation failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DescriptionResponse{Description: description})
}

// Vision generates a description grounded in an uploaded photo. The request
// is multipart: a file plus optional title/model/year/notes fields.
func (h *DescribeHandler) Vision(c *gin.Context) {
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

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	title := c.PostForm("title")
	model := c.PostForm("model")
	year := c.PostForm("year")
	notes := c.PostForm("notes")

	description, err := h.openai.DescribeItemImage(openai.VisionInput{
		Title:     title,
		Model:     model,
		Year:      year,
		Notes:     notes,
		ImageData: data,
		MimeType:  mime,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "description generation failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.VisionDescriptionResponse{
		Success:     true,
		Description: description,
		ItemDetails: models.VisionDescriptionDetails{
			Title: title,
			Model: model,
			Year:  year,
		},
	})
}
