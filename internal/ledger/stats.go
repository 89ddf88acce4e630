package ledger

// LargeDepositThreshold is the size from which a movement counts as a large
// deposit in bank-wide statistics.
const LargeDepositThreshold int64 = 1000

// BankStats aggregates the movements of every registered account.
type BankStats struct {
	DepositSum     int64 `json:"deposit_sum"`
	WithdrawalSum  int64 `json:"withdrawal_sum"`
	LargeDeposits  int   `json:"large_deposits"`
	OverallBalance int64 `json:"overall_balance"`
	Movements      int   `json:"movements"`
}

// Summarize flattens the movement histories and aggregates them in a single
// pass.
func Summarize(histories ...[]int64) BankStats {
	var s BankStats
	for _, movements := range histories {
		for _, m := range movements {
			s.Movements++
			s.OverallBalance += m
			if m > 0 {
				s.DepositSum += m
			} else {
				s.WithdrawalSum += m
			}
			if m >= LargeDepositThreshold {
				s.LargeDeposits++
			}
		}
	}
	return s
}
