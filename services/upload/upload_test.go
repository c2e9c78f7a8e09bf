package upload

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(filename, mimeType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{mimeType}},
	}
}

func TestValidateEvidenceFile(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{"pdf accepted", "application/pdf", 1024, nil},
		{"jpeg accepted", "image/jpeg", 1024, nil},
		{"png accepted", "image/png", 1024, nil},
		{"docx accepted", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, nil},
		{"tiff accepted", "image/tiff", 1024, nil},
		{"exactly at ceiling", "application/pdf", MaxEvidenceSize, nil},
		{"over ceiling", "application/pdf", MaxEvidenceSize + 1, ErrFileTooLarge},
		{"executable rejected", "application/x-msdownload", 1024, ErrFileType},
		{"plain text rejected", "text/plain", 1024, ErrFileType},
		{"oversized wrong type reports type first", "text/plain", MaxEvidenceSize + 1, ErrFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvidenceFile(header("evidence.bin", tt.mimeType, tt.size))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfileImage(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{"jpeg accepted", "image/jpeg", 1024, nil},
		{"png accepted", "image/png", 1024, nil},
		{"gif rejected for avatars", "image/gif", 1024, ErrFileType},
		{"pdf rejected for avatars", "application/pdf", 1024, ErrFileType},
		{"over 2MB rejected", "image/png", MaxProfileImageSize + 1, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileImage(header("avatar.png", tt.mimeType, tt.size))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVenueImage(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{"jpeg accepted", "image/jpeg", 1024, nil},
		{"png accepted", "image/png", 1024, nil},
		{"exactly at ceiling", "image/png", MaxProfileImageSize, nil},
		{"gif rejected for venue photos", "image/gif", 1024, ErrFileType},
		{"pdf rejected for venue photos", "application/pdf", 1024, ErrFileType},
		{"over 2MB rejected", "image/jpeg", MaxProfileImageSize + 1, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVenueImage(header("hall.png", tt.mimeType, tt.size))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDistinctFailureCauses(t *testing.T) {
	typeErr := ValidateEvidenceFile(header("a.txt", "text/plain", 10))
	sizeErr := ValidateEvidenceFile(header("a.pdf", "application/pdf", MaxEvidenceSize*2))

	assert.ErrorIs(t, typeErr, ErrFileType)
	assert.NotErrorIs(t, typeErr, ErrFileTooLarge)
	assert.ErrorIs(t, sizeErr, ErrFileTooLarge)
	assert.NotErrorIs(t, sizeErr, ErrFileType)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.True(t, IsImage("image/png"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage("image/tiff"))
}
