// Package blobkey generates collision-resistant names for stored blobs.
package blobkey

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator defines the interface for blob key generation strategies
type Generator interface {
	// GenerateKey creates a storage key for a file's blob. The key must not
	// collide with keys from prior uploads.
	GenerateKey(fileID uuid.UUID, originalName string) string
}

// TimestampGenerator names blobs "<unix-millis>-<name>". Millisecond
// resolution alone cannot guarantee uniqueness for uploads within the same
// instant, so the file id is appended as a tiebreaker.
type TimestampGenerator struct{}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{}
}

func (g *TimestampGenerator) GenerateKey(fileID uuid.UUID, originalName string) string {
	millis := time.Now().UnixMilli()
	if originalName == "" {
		return fmt.Sprintf("%d-%s", millis, fileID)
	}
	return fmt.Sprintf("%d-%s-%s", millis, shortID(fileID), sanitizeFilename(originalName))
}

// RandomGenerator names blobs "<uuid-hex>_<name>", relying on the random
// file id rather than wall-clock resolution for uniqueness.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) GenerateKey(fileID uuid.UUID, originalName string) string {
	hex := strings.ReplaceAll(fileID.String(), "-", "")
	if originalName == "" {
		return hex
	}
	return fmt.Sprintf("%s_%s", hex, sanitizeFilename(originalName))
}

// NewRecommendedGenerator returns the default generator for new installations
func NewRecommendedGenerator() Generator {
	return NewRandomGenerator()
}

func shortID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// sanitizeFilename replaces characters that are problematic in storage keys
func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(filename)
}
