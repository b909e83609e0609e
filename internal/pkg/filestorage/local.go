// Package filestorage persists uploaded papers on the local filesystem.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LocalStorage handles saving uploaded files to a directory on disk.
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // public URL prefix for stored files, e.g. http://host/uploads
	logger   zerolog.Logger
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed. baseURL is prepended to returned file references.
func NewLocalStorage(basePath, baseURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// SaveFile writes the uploaded file to disk under a timestamp-prefixed name.
// The original filename is preserved in the stored name because it carries
// the paper metadata; the prefix only prevents collisions between uploads of
// the same paper. Returns the stored filename and its public URL.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, string, error) {
	if fileHeader == nil {
		return "", "", fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFilename(fileHeader.Filename))
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		// Remove the partially written file before reporting.
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}

	fileURL := ls.baseURL + "/" + storedName
	ls.logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", storedName).
		Int64("size", fileHeader.Size).
		Msg("File saved successfully")
	return storedName, fileURL, nil
}

// FullPath returns the filesystem path of a stored file.
func (ls *LocalStorage) FullPath(storedName string) string {
	return filepath.Join(ls.basePath, filepath.Base(storedName))
}

// DeleteFile removes a stored file. Deleting a file that no longer exists is
// treated as success so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(storedName string) error {
	if storedName == "" {
		return nil
	}

	name := filepath.Base(storedName)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid file name: %s", storedName)
	}

	physicalPath := filepath.Join(ls.basePath, name)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ls.logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// SanitizeFilename strips path components and characters that are unsafe in
// stored filenames, keeping the underscore-delimited structure intact.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
