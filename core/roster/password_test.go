package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordGenerator_RejectsShortLength(t *testing.T) {
	_, err := NewPasswordGenerator(3)
	assert.Error(t, err)
}

func TestGenerate_CharacterClasses(t *testing.T) {
	gen, err := NewPasswordGenerator(12)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		pw, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, pw, 12)

		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol in %q", pw)
	}
}

func TestGenerate_MinimumLength(t *testing.T) {
	gen, err := NewPasswordGenerator(4)
	require.NoError(t, err)

	pw, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, pw, 4)
}
