package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Rejection reasons, in the order the checks run. The first failing check
// decides the reason; nothing is written to disk before all checks pass.
var (
	ErrFileTooLarge          = errors.New("file size exceeds the allowed limit")
	ErrExtensionNotAllowed   = errors.New("file extension not allowed")
	ErrContentTypeNotAllowed = errors.New("file content type not allowed")
)

// UploadPolicy bundles the constraints for one upload feature. Policies are
// built once at startup and passed in; the validator itself is policy-free.
type UploadPolicy struct {
	MaxSizeBytes        int64
	AllowedExtensions   []string
	AllowedContentTypes []string
}

// RoomImagePolicy is the policy for room catalog images.
func RoomImagePolicy() UploadPolicy {
	return UploadPolicy{
		MaxSizeBytes:        5 * 1024 * 1024,
		AllowedExtensions:   []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		AllowedContentTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	}
}

// AttachmentPolicy is the policy for generic user attachments.
func AttachmentPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSizeBytes:        2 * 1024 * 1024,
		AllowedExtensions:   []string{".jpg", ".jpeg", ".png", ".pdf"},
		AllowedContentTypes: []string{"image/jpeg", "image/png", "application/pdf"},
	}
}

// UploadService validates incoming files against its policy and stores
// accepted ones under Root with generated names. Root must not be exposed as
// a static route; reads go through the file endpoint instead.
type UploadService struct {
	Root   string
	Policy UploadPolicy
}

func NewUploadService(root string, policy UploadPolicy) *UploadService {
	return &UploadService{Root: root, Policy: policy}
}

// Validate runs the policy checks in order (size, extension, declared
// content type) and returns the lower-cased extension on success. The
// supplied filename is used for extension extraction only.
func (s *UploadService) Validate(filename, contentType string, size int64) (string, error) {
	if size > s.Policy.MaxSizeBytes {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || !containsFold(s.Policy.AllowedExtensions, ext) {
		return "", ErrExtensionNotAllowed
	}

	if !containsFold(s.Policy.AllowedContentTypes, contentType) {
		return "", ErrContentTypeNotAllowed
	}

	return ext, nil
}

// Save validates and then writes the file under a fresh generated name.
// The returned name is the only value callers may persist; the original
// filename never reaches the filesystem.
func (s *UploadService) Save(filename, contentType string, size int64, r io.Reader) (string, error) {
	ext, err := s.Validate(filename, contentType, size)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	storedName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Root, storedName))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return storedName, nil
}

// SaveMultipart is a convenience wrapper for gin form files.
func (s *UploadService) SaveMultipart(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.Save(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, src)
}

// ResolvePath maps a requested filename to a path inside Root. Any directory
// component the caller supplied is stripped, so traversal sequences cannot
// escape the storage root. The boolean reports whether the file exists.
func (s *UploadService) ResolvePath(requested string) (string, bool) {
	name := filepath.Base(filepath.ToSlash(requested))
	if name == "" || name == "." || name == ".." {
		return "", false
	}

	full := filepath.Join(s.Root, name)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

// Delete removes a stored artifact. Missing files are not an error: the
// replace flow prefers orphaning an old file over failing the request.
func (s *UploadService) Delete(storedName string) error {
	if storedName == "" {
		return nil
	}
	name := filepath.Base(filepath.ToSlash(storedName))
	if name == "" || name == "." || name == ".." {
		return nil
	}

	err := os.Remove(filepath.Join(s.Root, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ContentTypeForFile maps a stored filename to the MIME type the file
// endpoint serves it with. Unknown extensions fall back to octet-stream.
func ContentTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
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

func containsFold(set []string, v string) bool {
	for _, item := range set {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
