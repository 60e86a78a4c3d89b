package pkguid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Token generates opaque random identifiers with a fixed prefix, for example
// "csv_3f2b...". The random part is the 32 hex chars of a version 4 UUID, so
// tokens are neither sequential nor guessable.
type Token struct {
	prefix string
}

// NewToken returns a Token generator that prepends prefix to every value.
func NewToken(prefix string) *Token {
	return &Token{prefix: prefix}
}

// Generate returns a new token.
func (t *Token) Generate() string {
	id := uuid.New()
	return t.prefix + hex.EncodeToString(id[:])
}
