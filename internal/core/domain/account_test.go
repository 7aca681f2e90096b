package domain_test

import (
	"testing"

	"github.com/digibank/backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMinBalance(t *testing.T) {
	standard := domain.Account{
		Kind:           domain.KindStandard,
		OverdraftLimit: decimal.NewFromInt(500),
	}
	assert.True(t, standard.MinBalance().Equal(decimal.NewFromInt(-500)))

	savings := domain.Account{
		Kind:         domain.KindInterestBearing,
		InterestRate: decimal.NewFromFloat(0.02),
	}
	assert.True(t, savings.MinBalance().IsZero())
}

func TestAccountValidateBalance(t *testing.T) {
	acc := domain.Account{
		AccountID:      "acc-1",
		Kind:           domain.KindStandard,
		OverdraftLimit: decimal.NewFromInt(100),
	}

	assert.NoError(t, acc.ValidateBalance(decimal.NewFromInt(-100)))
	assert.NoError(t, acc.ValidateBalance(decimal.Zero))

	err := acc.ValidateBalance(decimal.NewFromFloat(-100.01))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "acc-1")
}

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to domain.AccountStatus
		want     bool
	}{
		{domain.StatusCreated, domain.StatusActive, true},
		{domain.StatusActive, domain.StatusSuspended, true},
		{domain.StatusSuspended, domain.StatusActive, true},
		{domain.StatusCreated, domain.StatusSuspended, false},
		{domain.StatusActive, domain.StatusCreated, false},
		{domain.StatusSuspended, domain.StatusCreated, false},
		{domain.StatusActive, domain.StatusActive, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ValidStatusTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOperationSignedAmount(t *testing.T) {
	credit := domain.Operation{Kind: domain.Credit, Amount: decimal.NewFromInt(10)}
	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromInt(10)))

	debit := domain.Operation{Kind: domain.Debit, Amount: decimal.NewFromInt(10)}
	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromInt(-10)))
}
