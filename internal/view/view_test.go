package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/bankist/internal/service"
)

func TestProject(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	st := service.Statement{
		Username:       "js",
		Owner:          "Jonas Schmedtmann",
		OwnerFirstName: "Jonas",
		Movements:      []int64{200, -400, 3000},
		Balance:        2800,
		TotalIncome:    3200,
		TotalExpense:   -400,
		Interest:       decimal.RequireFromString("38.4"),
		ExpiresAt:      now.Add(4*time.Minute + 5*time.Second),
	}

	m := Project(st, now)

	assert.Equal(t, "Welcome back, Jonas", m.Welcome)
	assert.Equal(t, "2800 €", m.Balance)
	assert.Equal(t, "3200€", m.SumIn)
	assert.Equal(t, "400€", m.SumOut)
	assert.Equal(t, "38.40€", m.SumInterest)
	assert.Equal(t, "04:05", m.Timer)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, Row{Number: 3, Type: RowDeposit, Amount: 3000, Label: "3000€"}, m.Rows[0])
	assert.Equal(t, Row{Number: 2, Type: RowWithdrawal, Amount: -400, Label: "-400€"}, m.Rows[1])
	assert.Equal(t, Row{Number: 1, Type: RowDeposit, Amount: 200, Label: "200€"}, m.Rows[2])
}

func TestProjectEmptyAccount(t *testing.T) {
	m := Project(service.Statement{OwnerFirstName: "Ada"}, time.Now())

	assert.NotNil(t, m.Rows)
	assert.Empty(t, m.Rows)
	assert.Equal(t, "0 €", m.Balance)
	assert.Equal(t, "0€", m.SumOut)
	assert.Equal(t, "0.00€", m.SumInterest)
	assert.Empty(t, m.Timer)
}

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     string
	}{
		{name: "no deadline", deadline: time.Time{}, want: ""},
		{name: "full five minutes", deadline: now.Add(5 * time.Minute), want: "05:00"},
		{name: "truncates partial seconds", deadline: now.Add(59*time.Second + 900*time.Millisecond), want: "00:59"},
		{name: "past deadline", deadline: now.Add(-time.Second), want: "00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Countdown(tc.deadline, now))
		})
	}
}
