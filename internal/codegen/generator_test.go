package codegen_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/shortlink-registry/internal/codegen"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	g := codegen.New()

	for i := 0; i < 1000; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, codegen.DefaultLength)

		for _, c := range code {
			assert.True(t, strings.ContainsRune(codegen.Alphabet, c), "unexpected symbol %q in %q", c, code)
		}
	}
}

func TestGenerate_CoversAlphabet(t *testing.T) {
	g := codegen.New()
	seen := make(map[rune]bool)

	for i := 0; i < 2000; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		for _, c := range code {
			seen[c] = true
		}
	}

	assert.Len(t, seen, len(codegen.Alphabet))
}

func TestGenerate_DeterministicSource(t *testing.T) {
	// rand.Int reads one byte per symbol for a 62-symbol alphabet and
	// rejects values >= 62 after masking to 6 bits.
	source := bytes.NewReader([]byte{0, 1, 2, 25, 26, 61})
	g := codegen.NewWithSource(source, 6)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "ABCZa9", code)
}

func TestGenerate_SourceError(t *testing.T) {
	g := codegen.NewWithSource(iotest.ErrReader(errors.New("entropy exhausted")), 6)

	_, err := g.Generate()
	assert.Error(t, err)
}

func TestNewWithSource_DefaultLength(t *testing.T) {
	g := codegen.NewWithSource(bytes.NewReader(make([]byte, 64)), 0)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", code)
}
