package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// Size ceilings in bytes.
const (
	MaxEvidenceSize     = 10 * 1024 * 1024 // 10MB
	MaxProfileImageSize = 2 * 1024 * 1024  // 2MB
)

// Sentinel validation errors. The two causes are distinct so callers can
// surface different user-facing messages.
var (
	ErrFileType     = errors.New("file type is not allowed")
	ErrFileTooLarge = errors.New("file size exceeds the allowed maximum")
)

var evidenceMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/jpg":          true,
	"image/png":          true,
	"image/gif":          true,
	"image/bmp":          true,
	"image/tiff":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var profileImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ValidateEvidenceFile checks a payment evidence upload against the allowed
// MIME set and the 10MB ceiling. Type is checked before size so each failure
// reports its own cause.
func ValidateEvidenceFile(file *multipart.FileHeader) error {
	mimeType := file.Header.Get("Content-Type")
	if !evidenceMimeTypes[mimeType] {
		return fmt.Errorf("%w: %s", ErrFileType, mimeType)
	}
	if file.Size > MaxEvidenceSize {
		return fmt.Errorf("%w: maximum size is 10MB", ErrFileTooLarge)
	}
	return nil
}

// ValidateProfileImage checks a profile image upload against the allowed
// MIME set and the 2MB ceiling.
func ValidateProfileImage(file *multipart.FileHeader) error {
	mimeType := file.Header.Get("Content-Type")
	if !profileImageMimeTypes[mimeType] {
		return fmt.Errorf("%w: %s", ErrFileType, mimeType)
	}
	if file.Size > MaxProfileImageSize {
		return fmt.Errorf("%w: maximum size is 2MB", ErrFileTooLarge)
	}
	return nil
}

// ValidateVenueImage checks a venue photo upload. Venue photos follow the
// same policy as avatars: JPEG or PNG, at most 2MB.
func ValidateVenueImage(file *multipart.FileHeader) error {
	mimeType := file.Header.Get("Content-Type")
	if !profileImageMimeTypes[mimeType] {
		return fmt.Errorf("%w: %s", ErrFileType, mimeType)
	}
	if file.Size > MaxProfileImageSize {
		return fmt.Errorf("%w: maximum size is 2MB", ErrFileTooLarge)
	}
	return nil
}

// IsImage reports whether the MIME type is an image the receipt parser can read.
func IsImage(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png":
		return true
	default:
		return false
	}
}

// SaveFile writes the bytes under dir with a collision-free name and returns
// the stored path.
func SaveFile(dir, prefix, originalFileName string, fileBytes []byte) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), ext)
	filePath := filepath.Join(dir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}
