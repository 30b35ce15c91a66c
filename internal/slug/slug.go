// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and assignment of slugs that are unique within an entity collection.
package slug

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Placeholder is the base used when a title has no sluggable characters.
	Placeholder = "item"

	// placeholderSuffixLen is the length of the random tail on placeholder slugs.
	placeholderSuffixLen = 6

	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	// whitespace matches runs of any whitespace.
	whitespace = regexp.MustCompile(`\s+`)
	// nonSlug matches anything outside the slug alphabet.
	nonSlug = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// foldMarks decomposes accented letters and drops the combining marks,
	// so "Café" becomes "Cafe" instead of losing the letter entirely.
	foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Night Shift Guard!!" → "night-shift-guard"
//
// The result may be empty when the input has no ASCII letters or digits
// left after folding; Assign handles that case.
func Generate(s string) string {
	folded, _, err := transform.String(foldMarks, s)
	if err != nil {
		folded = s
	}
	result := strings.ToLower(strings.TrimSpace(folded))
	result = whitespace.ReplaceAllString(result, "-")
	result = nonSlug.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Oracle reports whether a candidate slug is already used by a different
// record of the same entity type. Implementations close over the id of the
// record being saved so it does not collide with itself.
type Oracle func(ctx context.Context, candidate string) (bool, error)

// Assign returns the slug a record should be persisted with.
//
// A non-empty existing slug is returned unchanged and the oracle is not
// consulted. Otherwise the title is slugified and the lowest free numeric
// suffix ("-1", "-2", ...) is appended until the oracle reports the
// candidate as free. Oracle failures are returned wrapped, never swallowed.
func Assign(ctx context.Context, title, existing string, taken Oracle) (string, error) {
	if existing != "" {
		return existing, nil
	}

	base := Generate(title)
	if base == "" {
		suffix, err := randomSuffix(placeholderSuffixLen)
		if err != nil {
			return "", fmt.Errorf("slug placeholder: %w", err)
		}
		base = Placeholder + "-" + suffix
	}

	candidate := base
	for counter := 1; ; counter++ {
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug uniqueness check %q: %w", candidate, err)
		}
		if !used {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Normalize canonicalises a slug typed by staff so it follows the same
// alphabet as generated ones. It returns "" when nothing usable remains.
func Normalize(s string) string {
	return Generate(s)
}

// randomSuffix returns n characters drawn from [a-z0-9].
func randomSuffix(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(suffixAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
