// Package view projects a session statement into the render model shown to
// the client: welcome line, movement rows, formatted summary labels and the
// logout countdown.
package view

import (
	"fmt"
	"time"

	"github.com/josh-kwaku/bankist/internal/service"
)

const (
	RowDeposit    = "deposit"
	RowWithdrawal = "withdrawal"
)

type Row struct {
	Number int    `json:"number"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
	Label  string `json:"label"`
}

type Model struct {
	Username    string `json:"username"`
	Welcome     string `json:"welcome"`
	Rows        []Row  `json:"rows"`
	Sorted      bool   `json:"sorted"`
	Balance     string `json:"balance"`
	SumIn       string `json:"sum_in"`
	SumOut      string `json:"sum_out"`
	SumInterest string `json:"sum_interest"`
	Timer       string `json:"timer"`
}

// Project renders st as of now. Rows are listed newest first, each numbered
// by its 1-based position in the displayed sequence.
func Project(st service.Statement, now time.Time) Model {
	rows := make([]Row, len(st.Movements))
	for i, m := range st.Movements {
		kind := RowWithdrawal
		if m > 0 {
			kind = RowDeposit
		}
		rows[len(st.Movements)-1-i] = Row{
			Number: i + 1,
			Type:   kind,
			Amount: m,
			Label:  fmt.Sprintf("%d€", m),
		}
	}

	out := st.TotalExpense
	if out < 0 {
		out = -out
	}

	return Model{
		Username:    st.Username,
		Welcome:     "Welcome back, " + st.OwnerFirstName,
		Rows:        rows,
		Sorted:      st.Sorted,
		Balance:     fmt.Sprintf("%d €", st.Balance),
		SumIn:       fmt.Sprintf("%d€", st.TotalIncome),
		SumOut:      fmt.Sprintf("%d€", out),
		SumInterest: st.Interest.StringFixed(2) + "€",
		Timer:       Countdown(st.ExpiresAt, now),
	}
}

// Countdown formats the time left until deadline as mm:ss. A zero deadline
// yields an empty string.
func Countdown(deadline, now time.Time) string {
	if deadline.IsZero() {
		return ""
	}
	left := deadline.Sub(now)
	if left < 0 {
		left = 0
	}
	secs := int(left / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
