package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillingBalance(t *testing.T) {
	billing := &Billing{
		Amount: 350000,
		Payments: []Payment{
			{Amount: 100000},
			{Amount: 150000},
		},
	}

	assert.Equal(t, int64(250000), billing.TotalPaid())
	assert.Equal(t, int64(100000), billing.Balance())
}

func TestBillingBalanceNoPayments(t *testing.T) {
	billing := &Billing{Amount: 350000}

	assert.Equal(t, int64(0), billing.TotalPaid())
	assert.Equal(t, int64(350000), billing.Balance())
}

func TestRiskLevel(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	horizon := 7

	tests := []struct {
		name    string
		dueDate time.Time
		status  string
		paid    int64
		want    string
	}{
		{
			name:    "due yesterday is overdue",
			dueDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusUnpaid,
			want:    RiskOverdue,
		},
		{
			name:    "due today is due soon",
			dueDate: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
			status:  BillingStatusUnpaid,
			want:    RiskDueSoon,
		},
		{
			name:    "due exactly at the horizon is due soon",
			dueDate: time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusUnpaid,
			want:    RiskDueSoon,
		},
		{
			name:    "due one day past the horizon is safe",
			dueDate: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusUnpaid,
			want:    RiskSafe,
		},
		{
			name:    "paid billing carries no risk even when overdue",
			dueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusPaid,
			want:    RiskNone,
		},
		{
			name:    "fully covered billing carries no risk",
			dueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusUnpaid,
			paid:    200000,
			want:    RiskNone,
		},
		{
			name:    "waiting verification still counts as at risk",
			dueDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			status:  BillingStatusWaitingVerification,
			want:    RiskOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			billing := &Billing{
				Amount:  200000,
				DueDate: tt.dueDate,
				Status:  tt.status,
			}
			if tt.paid > 0 {
				billing.Payments = []Payment{{Amount: tt.paid}}
			}

			assert.Equal(t, tt.want, billing.RiskLevel(now, horizon))
		})
	}
}

func TestDaysUntilDueIgnoresTimeOfDay(t *testing.T) {
	// Late in the evening, a billing due early tomorrow morning is still one
	// whole calendar day away.
	now := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	billing := &Billing{DueDate: time.Date(2026, 3, 11, 0, 10, 0, 0, time.UTC)}

	assert.Equal(t, 1, billing.DaysUntilDue(now))
}
