package mapping

import (
	"github.com/digibank/backend/internal/core/domain"
	"github.com/digibank/backend/internal/models"
)

// ToModelOperation converts a domain operation to its persisted shape.
func ToModelOperation(d domain.Operation) models.Operation {
	return models.Operation{
		OperationID: d.OperationID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Kind:        string(d.Kind),
		Description: d.Description,
		TransferID:  d.TransferID,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainOperation converts a persisted operation to its domain shape.
func ToDomainOperation(m models.Operation) domain.Operation {
	return domain.Operation{
		OperationID: m.OperationID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Kind:        domain.OperationKind(m.Kind),
		Description: m.Description,
		TransferID:  m.TransferID,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
