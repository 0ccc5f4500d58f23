package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/mre31/ppm/internal/core/domain"
)

func TestDigest_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "Hello",
			input:    []byte("hello"),
			expected: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
		{
			name:     "Empty",
			input:    []byte{},
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Digest(tc.input))
		})
	}
}

func TestVerify(t *testing.T) {
	data := []byte("hello")
	assert.True(t, Verify(data, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"))
	assert.False(t, Verify(data, "0000000000000000000000000000000000000000000000000000000000000000"))
	assert.False(t, Verify(data, ""))
}

func TestDigest_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")

		digest := Digest(data)
		assert.True(t, domain.IsDigest(digest), "digest must be 64 lowercase hex chars")
		assert.True(t, Verify(data, digest), "data must verify against its own digest")
		assert.Equal(t, digest, Digest(data), "digest must be deterministic")
	})
}
