// Package seed provides the bootstrap accounts: the four built-in demo
// accounts, or the accounts listed in a YAML seed file.
package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/josh-kwaku/bankist/internal/domain"
)

type File struct {
	Accounts []Record `yaml:"accounts"`
}

type Record struct {
	Owner        string  `yaml:"owner"`
	Movements    []int64 `yaml:"movements"`
	InterestRate float64 `yaml:"interest_rate"`
	PIN          int     `yaml:"pin"`
}

func (r Record) account() *domain.Account {
	return &domain.Account{
		Owner:        r.Owner,
		Movements:    append([]int64(nil), r.Movements...),
		InterestRate: decimal.NewFromFloat(r.InterestRate),
		PIN:          r.PIN,
	}
}

var demo = []Record{
	{Owner: "Jonas Schmedtmann", Movements: []int64{200, 450, -400, 3000, -650, -130, 70, 1300}, InterestRate: 1.2, PIN: 1111},
	{Owner: "Jessica Davis", Movements: []int64{5000, 3400, -150, -790, -3210, -1000, 8500, -30}, InterestRate: 1.5, PIN: 2222},
	{Owner: "Steven Thomas Williams", Movements: []int64{200, -200, 340, -300, -20, 50, 400, -460}, InterestRate: 0.7, PIN: 3333},
	{Owner: "Sarah Smith", Movements: []int64{430, 1000, 700, 50, 90}, InterestRate: 1, PIN: 4444},
}

// Demo returns fresh copies of the built-in demo accounts.
func Demo() []*domain.Account {
	out := make([]*domain.Account, len(demo))
	for i, r := range demo {
		out[i] = r.account()
	}
	return out
}

// Decode reads a seed file. A file listing no accounts is an error.
func Decode(r io.Reader) ([]*domain.Account, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("Decode: no accounts: %w", domain.ErrInvalidRequest)
	}

	out := make([]*domain.Account, len(f.Accounts))
	for i, rec := range f.Accounts {
		if rec.InterestRate < 0 {
			return nil, fmt.Errorf("Decode: %q: negative interest rate: %w", rec.Owner, domain.ErrInvalidRequest)
		}
		out[i] = rec.account()
	}
	return out, nil
}

// Load returns the accounts of the seed file at path, or the demo accounts
// when path is empty.
func Load(path string) ([]*domain.Account, error) {
	if path == "" {
		return Demo(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	accounts, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}
	return accounts, nil
}
