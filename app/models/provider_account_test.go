package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProviderAccountUpdateTokens(t *testing.T) {
	pa := ProviderAccount{}
	exp := time.Now().Add(time.Hour)

	pa.UpdateTokens("access", "refresh", exp)
	assert.Equal(t, "access", pa.AccessToken)
	assert.Equal(t, "refresh", pa.RefreshToken)
	assert.NotNil(t, pa.ExpiresAt)

	pa.UpdateTokens("access2", "", time.Time{})
	assert.Nil(t, pa.ExpiresAt)
}

func TestProviderAccountTokenExpired(t *testing.T) {
	now := time.Now()

	pa := ProviderAccount{}
	assert.False(t, pa.TokenExpired(now), "no recorded expiry counts as valid")

	past := now.Add(-time.Minute)
	pa.ExpiresAt = &past
	assert.True(t, pa.TokenExpired(now))

	future := now.Add(time.Minute)
	pa.ExpiresAt = &future
	assert.False(t, pa.TokenExpired(now))
}
