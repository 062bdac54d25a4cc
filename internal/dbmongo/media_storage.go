package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"socialhub/internal/common"
)

type MediaFile struct {
	ID         string               `json:"id"`
	Filename   string               `json:"filename"`
	MimeType   string               `json:"mime_type"`
	Size       int64                `json:"size"`
	FileType   common.MediaFileType `json:"file_type"`
	UploadedBy uint64               `json:"uploaded_by"`
	UploadedAt time.Time            `json:"uploaded_at"`
}

// MediaStorage reads and writes files in a GridFS bucket.
type MediaStorage struct {
	gridFS *gridfs.Bucket
	now    func() time.Time
}

func NewMediaStorage(mongoClient *MongoClient) *MediaStorage {
	return &MediaStorage{
		gridFS: mongoClient.GridFS,
		now:    time.Now,
	}
}

func (ms *MediaStorage) UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*MediaFile, error) {
	fileType := common.DetectFileType(mimeType)
	uploadedAt := ms.now().UTC()

	metadata := bson.M{
		"file_type":   fileType.String(),
		"mime_type":   mimeType,
		"uploaded_by": strconv.FormatUint(uploaderID, 10),
		"uploaded_at": uploadedAt,
	}

	stream, err := ms.gridFS.OpenUploadStream(filename, options.GridFSUpload().SetMetadata(metadata))
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	size, err := io.Copy(stream, content)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("file copy failed: %w", err)
	}
	// the last chunk and the files document are written on Close
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	fileID, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected GridFS file id %T", stream.FileID)
	}
	return &MediaFile{
		ID:         fileID.Hex(),
		Filename:   filename,
		MimeType:   mimeType,
		Size:       size,
		FileType:   fileType,
		UploadedBy: uploaderID,
		UploadedAt: uploadedAt,
	}, nil
}

// DownloadFile opens a file for streaming. The caller closes the reader.
func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *MediaFile, error) {
	objectID, err := parseFileID(fileID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, nil, fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		if err := bson.Unmarshal(fileInfo.Metadata, &metadata); err != nil {
			_ = stream.Close()
			return nil, nil, fmt.Errorf("corrupt metadata for %s: %w", fileID, err)
		}
	}
	return stream, mediaFileFrom(fileID, fileInfo.Name, fileInfo.Length, fileInfo.UploadDate, metadata), nil
}

// filesDocument is the subset of a GridFS files document that FileInfo reads.
type filesDocument struct {
	Name       string    `bson:"filename"`
	Length     int64     `bson:"length"`
	UploadDate time.Time `bson:"uploadDate"`
	Metadata   bson.M    `bson:"metadata"`
}

// FileInfo reads a file's metadata without opening its chunks.
func (ms *MediaStorage) FileInfo(ctx context.Context, fileID string) (*MediaFile, error) {
	objectID, err := parseFileID(fileID)
	if err != nil {
		return nil, err
	}

	var doc filesDocument
	err = ms.gridFS.GetFilesCollection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
	}
	if err != nil {
		return nil, fmt.Errorf("file lookup failed: %w", err)
	}
	return mediaFileFrom(fileID, doc.Name, doc.Length, doc.UploadDate, doc.Metadata), nil
}

func mediaFileFrom(fileID, name string, length int64, uploadDate time.Time, metadata bson.M) *MediaFile {
	uploadedBy, _ := strconv.ParseUint(getStringFromMap(metadata, "uploaded_by"), 10, 64)
	return &MediaFile{
		ID:         fileID,
		Filename:   name,
		MimeType:   getStringFromMap(metadata, "mime_type"),
		Size:       length,
		FileType:   common.MediaFileType(getStringFromMap(metadata, "file_type")),
		UploadedBy: uploadedBy,
		UploadedAt: uploadDate,
	}
}

func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := parseFileID(fileID)
	if err != nil {
		return err
	}
	if err := ms.gridFS.Delete(objectID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("%w: file %s", common.ErrNotFound, fileID)
		}
		return err
	}
	return nil
}

func parseFileID(fileID string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid file ID %q", common.ErrInvalidInput, fileID)
	}
	return objectID, nil
}

func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
