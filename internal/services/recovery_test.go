package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackdeck/internal/models/request_models"
	mem "trackdeck/pkg/memcache"
	"trackdeck/pkg/utils"
)

func TestCredentialFromRequest_Variants(t *testing.T) {
	tests := []struct {
		name string
		req  request_models.RecoveryCredentialRequest
		want RecoveryCredential
	}{
		{
			"token hash wins over everything",
			request_models.RecoveryCredentialRequest{TokenHash: "deadbeef", Code: "abc", Token: "x"},
			TokenHashCredential{TokenHash: "deadbeef"},
		},
		{
			"pkce code",
			request_models.RecoveryCredentialRequest{Code: "abc"},
			CodeCredential{Code: "abc"},
		},
		{
			"access and refresh pair",
			request_models.RecoveryCredentialRequest{AccessToken: "at", RefreshToken: "rt"},
			TokenPairCredential{AccessToken: "at", RefreshToken: "rt"},
		},
		{
			"otp needs token plus email",
			request_models.RecoveryCredentialRequest{Token: "482913", Email: "mixer@studio.io"},
			OtpCredential{Token: "482913", Email: "mixer@studio.io"},
		},
		{
			"bare token falls back to code",
			request_models.RecoveryCredentialRequest{Token: "abc123"},
			CodeCredential{Code: "abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := CredentialFromRequest(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cred)
		})
	}
}

func TestCredentialFromRequest_Empty(t *testing.T) {
	_, err := CredentialFromRequest(request_models.RecoveryCredentialRequest{})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestRecoveryCredential_ResolveAndConsume(t *testing.T) {
	store := mem.NewResetTokens()
	raw := "raw-reset-token"
	store.Set(utils.Sha256Hex(raw), "mixer@studio.io", time.Hour)

	cred := CodeCredential{Code: raw}

	// peeking leaves the entry in place
	assert.Equal(t, "mixer@studio.io", cred.resolveEmail(store, false))
	assert.Equal(t, "mixer@studio.io", cred.resolveEmail(store, false))

	// consuming burns it
	assert.Equal(t, "mixer@studio.io", cred.resolveEmail(store, true))
	assert.Equal(t, "", cred.resolveEmail(store, true))
	assert.Equal(t, "", cred.resolveEmail(store, false))
}

func TestRecoveryCredential_TokenHashAndOtp(t *testing.T) {
	store := mem.NewResetTokens()
	raw := "another-token"
	store.Set(utils.Sha256Hex(raw), "artist@studio.io", time.Hour)
	store.Set(otpKey("artist@studio.io", "482913"), "artist@studio.io", time.Hour)

	hash := TokenHashCredential{TokenHash: utils.Sha256Hex(raw)}
	assert.Equal(t, "artist@studio.io", hash.resolveEmail(store, false))

	otp := OtpCredential{Token: "482913", Email: "ARTIST@studio.io"}
	assert.Equal(t, "artist@studio.io", otp.resolveEmail(store, true))
	assert.Equal(t, "", otp.resolveEmail(store, true))
}

func TestRecoveryCredential_UnknownOrExpired(t *testing.T) {
	store := mem.NewResetTokens()
	store.Set(utils.Sha256Hex("short-lived"), "gone@studio.io", -time.Second)

	assert.Equal(t, "", CodeCredential{Code: "never-issued"}.resolveEmail(store, false))
	assert.Equal(t, "", CodeCredential{Code: "short-lived"}.resolveEmail(store, false))
}
