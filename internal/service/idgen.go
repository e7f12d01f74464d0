package service

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// numberGen produces account numbers and sort codes from an injected
// source so tests can replay deterministic sequences.
type numberGen struct {
	rng *rand.Rand
}

func newNumberGen(rng *rand.Rand) *numberGen {
	return &numberGen{rng: rng}
}

// accountNumber returns "01" followed by six random digits. Uniqueness is
// the caller's problem; AccountService re-rolls until the store confirms
// the number is free.
func (g *numberGen) accountNumber() string {
	var sb strings.Builder
	sb.WriteString("01")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&sb, "%d", g.rng.Intn(10))
	}
	return sb.String()
}

// sortCode returns three two-digit groups in [10,99] joined by "-".
// Cosmetic only, never used for lookups, so no uniqueness check.
func (g *numberGen) sortCode() string {
	parts := make([]string, 3)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d", g.rng.Intn(90)+10)
	}
	return strings.Join(parts, "-")
}

// newTransactionID returns "tan-" plus the first eight characters of a
// fresh UUID.
func newTransactionID() string {
	return "tan-" + uuid.NewString()[:8]
}

// newUserID returns "usr-" plus the first eight characters of a fresh UUID.
func newUserID() string {
	return "usr-" + uuid.NewString()[:8]
}
