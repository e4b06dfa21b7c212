// Package namegen generates candidate username variations for a keyword.
// The variation rules mirror what the availability collaborator applies on
// its side, so hosts can preview candidates without a network call.
package namegen

import (
	"math/rand"
	"strings"
)

var leetspeak = map[rune]rune{
	'a': '4', 'e': '3', 'o': '0', 'l': '1', 's': '5', 't': '7',
}

var (
	suffixes = []string{"_tv", "_gg", "_pro", "x", "yt", "dev", "xd", "gaming"}
	prefixes = []string{"pro_", "im", "the_", "real_", "its"}
)

// Variations returns deterministic keyword variations no longer than maxLength:
// the keyword itself, its leetspeak form, prefix/suffix combinations, and the
// keyword with its last letter doubled. Order is stable, duplicates removed.
func Variations(keyword string, maxLength int) []string {
	if keyword == "" {
		return nil
	}

	candidates := []string{keyword}
	if leet := toLeet(keyword); leet != keyword {
		candidates = append(candidates, leet)
	}
	for _, s := range suffixes {
		candidates = append(candidates, keyword+s)
	}
	for _, p := range prefixes {
		candidates = append(candidates, p+keyword)
	}
	candidates = append(candidates, keyword+keyword[len(keyword)-1:])

	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if len(c) > maxLength || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// RandomCandidates returns count distinct candidates of the given length
// built from lowercase letters and digits.
func RandomCandidates(length, count int, rng *rand.Rand) []string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	if length <= 0 || count <= 0 {
		return nil
	}

	out := make([]string, 0, count)
	seen := make(map[string]bool, count)
	// Generation attempts are capped so short lengths cannot loop forever.
	for attempts := 0; len(out) < count && attempts < count*20; attempts++ {
		var b strings.Builder
		for i := 0; i < length; i++ {
			b.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		c := b.String()
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func toLeet(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		lower := r
		if r >= 'A' && r <= 'Z' {
			lower = r + ('a' - 'A')
		}
		if sub, ok := leetspeak[lower]; ok {
			b.WriteRune(sub)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
