// Package codegen generates random short codes over a configured alphabet.
//
// Adapted from the teacher's pkg/base62: the alphabet constant and the
// validity check survive, but the numeric encode/decode machinery does not —
// codes here are independently random rather than derived by encoding a
// snowflake id, so there is nothing to decode back into an integer.
package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultAlphabet is the 62-character alphanumeric alphabet used when a
// deployment does not configure a custom charset.
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator produces random short codes drawn uniformly from an alphabet.
type Generator struct {
	alphabet []rune
	length   int
}

// New builds a Generator. alphabet must contain at least 2 distinct runes and
// length must be in [4, 16], matching the bounds SPEC_FULL.md §4.1/§8 names.
func New(alphabet string, length int) (*Generator, error) {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	runes := uniqueRunes(alphabet)
	if len(runes) < 2 {
		return nil, fmt.Errorf("codegen: alphabet must have at least 2 distinct characters")
	}
	if length < 4 || length > 16 {
		return nil, fmt.Errorf("codegen: length must be in [4, 16], got %d", length)
	}
	return &Generator{alphabet: runes, length: length}, nil
}

func uniqueRunes(s string) []rune {
	seen := make(map[rune]bool, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Generate returns one uniformly random code of the configured length.
// Uses crypto/rand.Int per character, which performs rejection sampling
// internally and is therefore free of modulo bias.
func (g *Generator) Generate() (string, error) {
	n := big.NewInt(int64(len(g.alphabet)))
	buf := make([]rune, g.length)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("codegen: read random: %w", err)
		}
		buf[i] = g.alphabet[idx.Int64()]
	}
	return string(buf), nil
}

// Length reports the configured code length.
func (g *Generator) Length() int {
	return g.length
}

// IsValid reports whether code is a plausible code for this generator: 4 to
// 16 characters long (not necessarily the configured length) and drawn
// entirely from the configured alphabet. Used to
// validate caller-supplied custom codes, not codes this Generator produced.
func (g *Generator) IsValid(code string) bool {
	if len(code) == 0 {
		return false
	}
	allowed := make(map[rune]bool, len(g.alphabet))
	for _, r := range g.alphabet {
		allowed[r] = true
	}
	count := 0
	for _, r := range code {
		if !allowed[r] {
			return false
		}
		count++
	}
	return count >= 4 && count <= 16
}
