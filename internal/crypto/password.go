package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// passwordClasses are the alphabets generated passwords draw from. Adjacent
// characters never come from the same class, which breaks up the ambiguous
// runs that make long random strings painful to read back or retype.
var passwordClasses = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"0123456789",
	"-_",
}

// PasswordGenerator produces the random passwords used for share URLs and
// file deletion. Lengths are drawn uniformly from an inclusive range and
// all randomness comes from crypto/rand.
type PasswordGenerator struct {
	minLen int
	maxLen int
}

// NewPasswordGenerator returns a generator for passwords of minLen up to
// and including maxLen characters.
func NewPasswordGenerator(minLen, maxLen int) (*PasswordGenerator, error) {
	if minLen < 1 {
		return nil, fmt.Errorf("minimum password length must be at least 1, got %d", minLen)
	}
	if maxLen < minLen {
		return nil, fmt.Errorf("maximum password length %d is below minimum %d", maxLen, minLen)
	}
	return &PasswordGenerator{minLen: minLen, maxLen: maxLen}, nil
}

// Generate returns a fresh password. The first character's class is chosen
// uniformly from all four, every following class uniformly from the three
// the previous character did not use, and each character uniformly from its
// class alphabet.
func (g *PasswordGenerator) Generate() (string, error) {
	length := g.minLen
	if g.maxLen > g.minLen {
		n, err := randInt(g.maxLen - g.minLen + 1)
		if err != nil {
			return "", err
		}
		length = g.minLen + n
	}

	class, err := randInt(len(passwordClasses))
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, length)
	for len(out) < length {
		alphabet := passwordClasses[class]
		idx, err := randInt(len(alphabet))
		if err != nil {
			return "", err
		}
		out = append(out, alphabet[idx])

		step, err := randInt(len(passwordClasses) - 1)
		if err != nil {
			return "", err
		}
		class = (class + 1 + step) % len(passwordClasses)
	}

	return string(out), nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading randomness: %w", err)
	}
	return int(v.Int64()), nil
}
