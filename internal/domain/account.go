package domain

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Account is a demo bank account. Balance is never stored; it is always the
// sum of Movements.
type Account struct {
	Owner        string
	Username     string
	Movements    []int64
	InterestRate decimal.Decimal
	PIN          int
}

// Clone returns a deep copy so callers cannot mutate store-owned movements.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = slices.Clone(a.Movements)
	return &cp
}

// FirstName is the first word of Owner.
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Posting is a single append of Amount to the movements of Username.
type Posting struct {
	Username string
	Amount   int64
}

// DeriveUsername concatenates the lowercase initial of every
// whitespace-separated word of owner: "Jonas Schmedtmann" -> "js".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(owner) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
