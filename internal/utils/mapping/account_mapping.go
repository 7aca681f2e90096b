package mapping

import (
	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/models"
)

// ToModelAccount converts a domain account to its persisted shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		CustomerID:     d.CustomerID,
		CurrencyCode:   d.CurrencyCode,
		Kind:           string(d.Kind),
		Status:         string(d.Status),
		Balance:        d.Balance,
		OverdraftLimit: d.OverdraftLimit,
		InterestRate:   d.InterestRate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persisted account to its domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		CustomerID:     m.CustomerID,
		CurrencyCode:   m.CurrencyCode,
		Kind:           domain.AccountKind(m.Kind),
		Status:         domain.AccountStatus(m.Status),
		Balance:        m.Balance,
		OverdraftLimit: m.OverdraftLimit,
		InterestRate:   m.InterestRate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of persisted accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
