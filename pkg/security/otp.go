package security

import (
	"crypto/rand"
	"math/big"
)

// OtpLength is the number of digits in a one-time code.
const OtpLength = 6

// GenerateOtp returns a random 6-digit numeric code as a string.
// The range is [100000, 999999] so the code never has a leading zero
// and always survives a round trip through form inputs.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
