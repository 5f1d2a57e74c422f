package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"trackdeck/pkg/utils"
)

func TestValidateTempo(t *testing.T) {
	assert.NoError(t, ValidateTempo(40))
	assert.NoError(t, ValidateTempo(120))
	assert.NoError(t, ValidateTempo(300))

	assert.True(t, errors.Is(ValidateTempo(39), utils.ErrValidation))
	assert.True(t, errors.Is(ValidateTempo(301), utils.ErrValidation))
}

func TestValidateSampleRate(t *testing.T) {
	for _, rate := range []int{44100, 48000, 88200, 96000} {
		assert.NoError(t, ValidateSampleRate(rate))
	}
	assert.True(t, errors.Is(ValidateSampleRate(22050), utils.ErrValidation))
	assert.True(t, errors.Is(ValidateSampleRate(0), utils.ErrValidation))
}

func TestValidateMusicalKey(t *testing.T) {
	assert.NoError(t, ValidateMusicalKey("C major"))
	assert.NoError(t, ValidateMusicalKey("F# minor"))

	assert.True(t, errors.Is(ValidateMusicalKey("H major"), utils.ErrValidation))
	assert.True(t, errors.Is(ValidateMusicalKey("c major"), utils.ErrValidation))
	assert.True(t, errors.Is(ValidateMusicalKey(""), utils.ErrValidation))
}
