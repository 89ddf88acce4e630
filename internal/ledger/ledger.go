// Package ledger holds the pure computations over a movement history:
// balance, income, expense, qualifying interest, sort order and the loan
// coverage rule. Nothing here mutates its input.
package ledger

import (
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Policy carries the two tunable thresholds of the ledger rules.
type Policy struct {
	// InterestFloor drops per-deposit interest terms below this value.
	InterestFloor decimal.Decimal
	// LoanCoverage is the share of a requested loan some single movement
	// must reach for the loan to be approved.
	LoanCoverage decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		InterestFloor: decimal.NewFromInt(1),
		LoanCoverage:  decimal.NewFromFloat(0.1),
	}
}

func NewPolicy(interestFloor, loanCoverage float64) Policy {
	return Policy{
		InterestFloor: decimal.NewFromFloat(interestFloor),
		LoanCoverage:  decimal.NewFromFloat(loanCoverage),
	}
}

func Balance(movements []int64) int64 {
	var sum int64
	for _, m := range movements {
		sum += m
	}
	return sum
}

func TotalIncome(movements []int64) int64 {
	var sum int64
	for _, m := range movements {
		if m > 0 {
			sum += m
		}
	}
	return sum
}

// TotalExpense is reported as a negative number.
func TotalExpense(movements []int64) int64 {
	var sum int64
	for _, m := range movements {
		if m < 0 {
			sum += m
		}
	}
	return sum
}

// QualifyingInterest sums deposit*rate/100 over every deposit whose term
// reaches floor. Deposits below the floor contribute nothing.
func QualifyingInterest(movements []int64, rate, floor decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m <= 0 {
			continue
		}
		term := decimal.NewFromInt(m).Mul(rate).Div(hundred)
		if term.LessThan(floor) {
			continue
		}
		total = total.Add(term)
	}
	return total
}

// Sorted returns a sorted copy of movements.
func Sorted(movements []int64, ascending bool) []int64 {
	out := slices.Clone(movements)
	if out == nil {
		out = []int64{}
	}
	slices.Sort(out)
	if !ascending {
		slices.Reverse(out)
	}
	return out
}

// QualifiesForLoan reports whether amount is positive and at least one
// movement is >= amount*coverage.
func QualifiesForLoan(movements []int64, amount int64, coverage decimal.Decimal) bool {
	if amount <= 0 {
		return false
	}
	required := decimal.NewFromInt(amount).Mul(coverage)
	return slices.ContainsFunc(movements, func(m int64) bool {
		return decimal.NewFromInt(m).GreaterThanOrEqual(required)
	})
}
