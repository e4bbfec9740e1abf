package calculator

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Cache entry kinds.
const (
	KindCalculate = "calculate"
	KindSweep     = "sweep"
)

// ResultCache stores encoded responses by request fingerprint.
// Implementations decide expiry; a miss is (nil, false, nil).
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) ([]byte, bool, error)
	Put(ctx context.Context, fingerprint, kind string, payload []byte) error
}

// Fingerprint returns the hex BLAKE2b-256 of the JSON encoding of kind and
// the fully resolved request. Struct field order keeps the encoding stable.
func Fingerprint(kind string, request any) (string, error) {
	b, err := json.Marshal(struct {
		Kind    string `json:"kind"`
		Request any    `json:"request"`
	}{kind, request})
	if err != nil {
		return "", fmt.Errorf("encoding %s fingerprint: %w", kind, err)
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
