package roster

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	symbolChars  = "!@#$%&*+-_=?"
	allPassChars = upperChars + lowerChars + digitChars + symbolChars
)

// PasswordGenerator produces random passwords that always contain at least
// one uppercase letter, one lowercase letter, one digit and one symbol.
type PasswordGenerator struct {
	length int
}

// NewPasswordGenerator returns a generator for passwords of the given
// length. Lengths below 4 cannot cover all character classes.
func NewPasswordGenerator(length int) (*PasswordGenerator, error) {
	if length < 4 {
		return nil, fmt.Errorf("password length must be at least 4, got %d", length)
	}
	return &PasswordGenerator{length: length}, nil
}

// Generate returns one random password.
func (g *PasswordGenerator) Generate() (string, error) {
	chars := make([]byte, 0, g.length)

	// One of each class first, the rest from the full pool.
	for _, pool := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := randomChar(pool)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < g.length {
		c, err := randomChar(allPassChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Shuffle so the class-guaranteed characters are not always first.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		chars[i], chars[j.Int64()] = chars[j.Int64()], chars[i]
	}

	return string(chars), nil
}

func randomChar(pool string) (byte, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return pool[idx.Int64()], nil
}
