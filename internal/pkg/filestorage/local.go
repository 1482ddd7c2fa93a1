package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

// URLPrefix is the route the storage directory is served under.
const URLPrefix = "/uploads"

// LocalStorage saves files below basePath and serves them under baseURL + URLPrefix.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage, ensuring basePath exists.
// baseURL is optional; without it returned URLs are root-relative.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath is the directory files are written to.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveFile implements Storage.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !Allowed(folder, ext) {
		return "", fmt.Errorf("%w: %q in %s", ErrUnsupportedType, ext, folder)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	url, err := ls.write(file, ext, folder)
	if err != nil {
		return "", err
	}
	logger.Info().Str("filename", fileHeader.Filename).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// SaveBytes implements Storage.
func (ls *LocalStorage) SaveBytes(data []byte, ext, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to store an empty file")
	}
	ext = strings.ToLower(ext)
	if !Allowed(folder, ext) {
		return "", fmt.Errorf("%w: %q in %s", ErrUnsupportedType, ext, folder)
	}
	return ls.write(bytes.NewReader(data), ext, folder)
}

func (ls *LocalStorage) write(src io.Reader, ext, folder string) (string, error) {
	dir := filepath.Join(ls.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + ext
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	return ls.baseURL + path.Join(URLPrefix, folder, name), nil
}

// DeleteFile implements Storage. Deleting a missing file is not an error.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	physicalPath, err := ls.FullPath(fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// Owns implements Storage.
func (ls *LocalStorage) Owns(fileURL string) bool {
	_, err := ls.FullPath(fileURL)
	return err == nil
}

// FullPath maps a URL returned by this storage back to its file on disk.
func (ls *LocalStorage) FullPath(fileURL string) (string, error) {
	rel := strings.TrimPrefix(fileURL, ls.baseURL)
	rel, ok := strings.CutPrefix(rel, URLPrefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid file url: %s", fileURL)
	}
	clean := path.Clean("/" + rel)[1:]
	return filepath.Join(ls.basePath, filepath.FromSlash(clean)), nil
}
