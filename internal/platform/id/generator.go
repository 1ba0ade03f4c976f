package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const PrefixIngestionRun = "ingest"

// Generator creates opaque IDs used to correlate log lines of one unit of work.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	prefix string
}

// NewRandomGenerator returns a generator of 16 random bytes hex encoded, prefixed with
// prefix and a dash when prefix is non-empty.
func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	raw := hex.EncodeToString(buf)
	if g.prefix == "" {
		return raw, nil
	}
	return g.prefix + "-" + raw, nil
}
