// Package media accepts image uploads and streams them back from GridFS.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/dbmongo"
	"socialhub/internal/logger"
)

// MaxUploadSize caps a single uploaded image.
const MaxUploadSize = 5 << 20

// sniffLen is how much of the file http.DetectContentType looks at.
const sniffLen = 512

type Store interface {
	UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
	FileInfo(ctx context.Context, fileID string) (*dbmongo.MediaFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type uploadResponse struct {
	*dbmongo.MediaFile
	URL string `json:"url"`
}

// Handler serves the authenticated upload API. A nil store means MongoDB is
// not configured and every call answers 503.
type Handler struct {
	store   Store
	baseURL string
}

func NewHandler(store Store, baseURL string) *Handler {
	return &Handler{store: store, baseURL: baseURL}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/media", common.RequireUser(h.Upload)).Methods(http.MethodPost)
	r.HandleFunc("/media/{fileId}", common.RequireUser(h.Delete)).Methods(http.MethodDelete)
}

// Upload stores the multipart "file" field. Only images are accepted; the type
// is taken from the content, not from the client's header.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		common.WriteError(w, r, fmt.Errorf("%w: media storage is disabled", common.ErrUnavailable))
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+64<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, r, fmt.Errorf("%w: multipart field \"file\" of at most %d bytes is required", common.ErrInvalidInput, MaxUploadSize))
		return
	}
	defer file.Close()
	if header.Size > MaxUploadSize {
		common.WriteError(w, r, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, MaxUploadSize))
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		common.WriteError(w, r, err)
		return
	}
	head = head[:n]
	mimeType := http.DetectContentType(head)
	ext, ok := common.ImageExtension(mimeType)
	if !ok {
		common.WriteError(w, r, fmt.Errorf("%w: unsupported file type %s", common.ErrInvalidInput, mimeType))
		return
	}

	stored, err := h.store.UploadFile(r.Context(), uuid.NewString()+ext, mimeType, userID,
		io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	logger.Log.Info("media uploaded",
		logger.WithRequestID(common.RequestIDFromContext(r.Context())),
		logger.WithUserID(userID),
		zap.String("file_id", stored.ID),
		zap.Int64("size", stored.Size),
	)
	common.WriteJSON(w, http.StatusCreated, uploadResponse{MediaFile: stored, URL: h.baseURL + stored.ID})
}

// Delete removes a file. Only the uploader may delete it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		common.WriteError(w, r, fmt.Errorf("%w: media storage is disabled", common.ErrUnavailable))
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())
	fileID := mux.Vars(r)["fileId"]

	file, err := h.store.FileInfo(r.Context(), fileID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	if file.UploadedBy != userID {
		common.WriteError(w, r, fmt.Errorf("%w: not your file", common.ErrForbidden))
		return
	}

	if err := h.store.DeleteFile(r.Context(), fileID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "file deleted")
}
