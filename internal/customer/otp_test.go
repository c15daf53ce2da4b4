package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[otp] = true
	}
	// 50 draws from a million values colliding into one would mean a
	// broken generator
	assert.Greater(t, len(seen), 1)
}

func TestOTPValid(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(otpTTL)
	past := now.Add(-time.Minute)

	tests := []struct {
		name   string
		hash   string
		expiry *time.Time
		otp    string
		want   bool
	}{
		{"valid code", hashValue("123456"), &future, "123456", true},
		{"wrong code", hashValue("123456"), &future, "654321", false},
		{"expired", hashValue("123456"), &past, "123456", false},
		{"no hash stored", "", &future, "123456", false},
		{"no expiry stored", hashValue("123456"), nil, "123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, otpValid(tt.hash, tt.expiry, tt.otp, now))
		})
	}
}
