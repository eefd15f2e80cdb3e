package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/handlers"
	"bidhouse-backend/internal/openai"
)

func describeRouter(openaiBaseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	client := openai.NewClient(openaiBaseURL, "test-key")
	handler := handlers.NewDescribeHandler(client)

	router := gin.New()
	router.POST("/describe", handler.Simple)
	router.POST("/describe/vision", handler.Vision)
	return router
}

func multipartImage(t *testing.T, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})

	assert.NoError(t, writer.WriteField("title", "Brass clock"))
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSimpleDescribe(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"output": []map[string]any{
				{
					"type": "message",
					"content": []map[string]any{
						{"type": "output_text", "text": "A fine clock."},
					},
				},
			},
		})
	}))
	defer upstream.Close()

	router := describeRouter(upstream.URL)
	body, _ := json.Marshal(map[string]string{"title": "Brass clock"})

	req, _ := http.NewRequest("POST", "/describe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"description": "A fine clock."}`, w.Body.String())
}

func TestSimpleDescribe_TitleRequired(t *testing.T) {
	router := describeRouter("http://unused.invalid")

	req, _ := http.NewRequest("POST", "/describe", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisionDescribe(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "A fine clock with visible patina."}},
			},
		})
	}))
	defer upstream.Close()

	router := describeRouter(upstream.URL)
	body, contentType := multipartImage(t, "clock.jpg", "image/jpeg")

	req, _ := http.NewRequest("POST", "/describe/vision", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "A fine clock with visible patina.", resp["description"])
}

func TestVisionDescribe_RejectsAvif(t *testing.T) {
	router := describeRouter("http://unused.invalid")
	body, contentType := multipartImage(t, "clock.avif", "image/avif")

	req, _ := http.NewRequest("POST", "/describe/vision", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported image type")
}

func TestVisionDescribe_FileRequired(t *testing.T) {
	router := describeRouter("http://unused.invalid")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("title", "Clock"))
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/describe/vision", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
