package customer

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const otpTTL = 5 * time.Minute

func hashValue(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

// generateOTP returns a 6-digit code with leading zeros preserved.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// otpValid checks a submitted code against the stored hash and expiry.
func otpValid(storedHash string, expiry *time.Time, otp string, now time.Time) bool {
	if storedHash == "" || expiry == nil {
		return false
	}
	if expiry.Before(now) {
		return false
	}
	return storedHash == hashValue(otp)
}
