package media

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/logger"
)

// HTTPServer streams stored files at GET /media/{fileId}.
type HTTPServer struct {
	store  Store
	router *mux.Router
}

func NewHTTPServer(store Store) *HTTPServer {
	s := &HTTPServer{store: store, router: mux.NewRouter()}
	s.router.HandleFunc("/media/{fileId}", s.serveFile).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		common.WriteError(w, r, fmt.Errorf("%w: media storage is disabled", common.ErrUnavailable))
		return
	}
	fileID := mux.Vars(r)["fileId"]

	reader, file, err := s.store.DownloadFile(r.Context(), fileID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	defer reader.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = contentTypeFor(file.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")

	if _, err := io.Copy(w, reader); err != nil {
		logger.Log.Warn("error streaming file", zap.String("file_id", fileID), zap.Error(err))
	}
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		common.WriteError(w, r, fmt.Errorf("%w: media storage is disabled", common.ErrUnavailable))
		return
	}
	common.WriteMessage(w, http.StatusOK, "media server is healthy")
}
