package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackdeck/internal/models/db_models"
	"trackdeck/pkg/utils"
)

func TestValidateUpload_SizeCaps(t *testing.T) {
	_, err := ValidateUpload("mix.wav", MaxFileSize+1, "audio/wav", db_models.CategoryMixes)
	assert.True(t, errors.Is(err, utils.ErrFileTooLarge))

	// the same size is fine for session archives
	_, err = ValidateUpload("session.zip", MaxFileSize+1, "application/zip", db_models.CategorySessions)
	assert.NoError(t, err)

	_, err = ValidateUpload("session.zip", MaxSessionFileSize+1, "application/zip", db_models.CategorySessions)
	assert.True(t, errors.Is(err, utils.ErrFileTooLarge))
}

func TestValidateUpload_MimeWhitelist(t *testing.T) {
	_, err := ValidateUpload("mix.wav", 1024, "audio/wav", db_models.CategoryMixes)
	assert.NoError(t, err)

	_, err = ValidateUpload("notes.pdf", 1024, "application/pdf", db_models.CategoryNotes)
	assert.NoError(t, err)

	_, err = ValidateUpload("movie.mp4", 1024, "video/mp4", db_models.CategoryMixes)
	assert.True(t, errors.Is(err, utils.ErrDisallowedMime))

	_, err = ValidateUpload("notes.zip", 1024, "application/zip", db_models.CategoryNotes)
	assert.True(t, errors.Is(err, utils.ErrDisallowedMime))
}

func TestSanitizeFileName(t *testing.T) {
	name, err := SanitizeFileName("Final Mix (v2).wav")
	require.NoError(t, err)
	assert.Equal(t, "Final Mix (v2).wav", name)

	// path components are stripped
	name, err = SanitizeFileName("../../etc/passwd.txt")
	require.NoError(t, err)
	assert.Equal(t, "passwd.txt", name)

	// unsafe characters squashed
	name, err = SanitizeFileName("mix<>:?.wav")
	require.NoError(t, err)
	assert.Equal(t, "mix____.wav", name)
}

func TestSanitizeFileName_Rejections(t *testing.T) {
	_, err := SanitizeFileName("mix.wav.exe")
	assert.True(t, errors.Is(err, utils.ErrUnsafeFileName), "double extension")

	_, err = SanitizeFileName("installer.exe")
	assert.True(t, errors.Is(err, utils.ErrUnsafeFileName), "executable extension")

	_, err = SanitizeFileName("script.SH")
	assert.True(t, errors.Is(err, utils.ErrUnsafeFileName), "case-insensitive executable check")

	_, err = SanitizeFileName("..")
	assert.True(t, errors.Is(err, utils.ErrUnsafeFileName))
}
