// Package randid provides short random identifiers for display and lookup.
package randid

import "math/rand/v2"

// alphabet omits characters that are easy to misread when typed back
// (0/o, 1/l/i).
const alphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// Generate creates a random ID of the specified length drawn from alphabet.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
