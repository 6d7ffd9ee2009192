package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, body)
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newUploadRouter(u Uploader) *gin.Engine {
	h := NewUploadHandlers(u, testLogger())
	r := gin.New()
	r.POST("/api/admin/upload", h.UploadImage)
	return r
}

func multipartImage(t *testing.T, field, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	part.Write([]byte("not-really-png-bytes"))
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	u := &fakeUploader{}
	r := newUploadRouter(u)

	body, contentType := multipartImage(t, "image", "screenshot.PNG", "image/png")
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, u.keys, 1)
	assert.Contains(t, u.keys[0], "projects/")
	assert.Contains(t, u.keys[0], ".png")
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/")
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	u := &fakeUploader{}
	r := newUploadRouter(u)

	body, contentType := multipartImage(t, "image", "notes.txt", "text/plain")
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, u.keys)
}

func TestUploadImage_MissingFile(t *testing.T) {
	r := newUploadRouter(&fakeUploader{})

	req := httptest.NewRequest("POST", "/api/admin/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage_StorageNotConfigured(t *testing.T) {
	r := newUploadRouter(nil)

	body, contentType := multipartImage(t, "image", "a.png", "image/png")
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
