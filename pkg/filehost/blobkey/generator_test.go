package blobkey_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/simplehost/filehost/pkg/filehost/blobkey"
)

func TestRandomGeneratorUniqueness(t *testing.T) {
	gen := blobkey.NewRandomGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := gen.GenerateKey(uuid.New(), "report.pdf")
		assert.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}

func TestTimestampGeneratorSameInstant(t *testing.T) {
	gen := blobkey.NewTimestampGenerator()

	// Keys generated within the same millisecond must still differ
	a := gen.GenerateKey(uuid.New(), "notes.txt")
	b := gen.GenerateKey(uuid.New(), "notes.txt")
	assert.NotEqual(t, a, b)
}

func TestGenerateKeySanitizesName(t *testing.T) {
	gen := blobkey.NewRandomGenerator()

	key := gen.GenerateKey(uuid.New(), "my report/v2: final?.pdf")
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, ":")
	assert.NotContains(t, key, "?")
	assert.NotContains(t, key, " ")
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}

func TestGenerateKeyEmptyName(t *testing.T) {
	id := uuid.New()

	randomKey := blobkey.NewRandomGenerator().GenerateKey(id, "")
	assert.NotEmpty(t, randomKey)
	assert.NotContains(t, randomKey, "_")

	tsKey := blobkey.NewTimestampGenerator().GenerateKey(id, "")
	assert.Contains(t, tsKey, id.String())
}
