package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/common"
	"socialhub/internal/dbmongo"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// memoryStore keeps files in a map keyed by a counter id.
type memoryStore struct {
	mu            sync.Mutex
	next          int
	files         map[string]*dbmongo.MediaFile
	data          map[string][]byte
	downloadCalls int
	infoCalls     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string]*dbmongo.MediaFile{}, data: map[string][]byte{}}
}

func (m *memoryStore) UploadFile(_ context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error) {
	body, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	id := fmt.Sprintf("%024x", m.next)
	f := &dbmongo.MediaFile{
		ID:         id,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       int64(len(body)),
		FileType:   common.DetectFileType(mimeType),
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}
	m.files[id] = f
	m.data[id] = body
	return f, nil
}

func (m *memoryStore) DownloadFile(_ context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadCalls++
	f, ok := m.files[fileID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
	}
	return io.NopCloser(bytes.NewReader(m.data[fileID])), f, nil
}

func (m *memoryStore) FileInfo(_ context.Context, fileID string) (*dbmongo.MediaFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoCalls++
	f, ok := m.files[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
	}
	return f, nil
}

func (m *memoryStore) DeleteFile(_ context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[fileID]; !ok {
		return fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
	}
	delete(m.files, fileID)
	delete(m.data, fileID)
	return nil
}

var tokens = common.NewTokenManager("media-secret", time.Hour)

func newAPI(store Store) *mux.Router {
	r := mux.NewRouter()
	r.Use(common.AuthMiddleware(tokens))
	NewHandler(store, "http://media.test/media/").RegisterRoutes(r)
	return r
}

func authorize(t *testing.T, req *http.Request, userID uint64) {
	t.Helper()
	token, err := tokens.GenerateToken(userID, common.KindUser, 0)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "picture.bin")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Upload(t *testing.T) {
	store := newMemoryStore()
	api := newAPI(store)

	t.Run("image", func(t *testing.T) {
		content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 1024)...)
		req := uploadRequest(t, content)
		authorize(t, req, 7)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"mime_type":"image/png"`)
		assert.Contains(t, rec.Body.String(), `"url":"http://media.test/media/`)

		require.Len(t, store.files, 1)
		for id, f := range store.files {
			assert.Equal(t, uint64(7), f.UploadedBy)
			assert.Equal(t, content, store.data[id], "sniffed bytes are kept")
			assert.Contains(t, f.Filename, ".png")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		req := uploadRequest(t, []byte("just some text"))
		authorize(t, req, 7)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		content := append(append([]byte{}, pngHeader...), make([]byte, MaxUploadSize)...)
		req := uploadRequest(t, content)
		authorize(t, req, 7)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, uploadRequest(t, pngHeader))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		req := uploadRequest(t, pngHeader)
		authorize(t, req, 7)
		rec := httptest.NewRecorder()
		newAPI(nil).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	store := newMemoryStore()
	api := newAPI(store)
	f, err := store.UploadFile(context.Background(), "a.png", "image/png", 7, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/media/"+f.ID, nil)
	authorize(t, req, 8)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/media/"+f.ID, nil)
	authorize(t, req, 7)
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.files)
	assert.Equal(t, 2, store.infoCalls)
	assert.Zero(t, store.downloadCalls, "ownership is read from metadata, not the file body")

	req = httptest.NewRequest(http.MethodDelete, "/media/"+f.ID, nil)
	authorize(t, req, 7)
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPServer_ServeFile(t *testing.T) {
	store := newMemoryStore()
	f, err := store.UploadFile(context.Background(), "a.png", "image/png", 7, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	srv := NewHTTPServer(store)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/"+f.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	NewHTTPServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeFor("x.JPEG"))
	assert.Equal(t, "image/webp", contentTypeFor("x.webp"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("x.mp4"))
}
