package models

// Customer is the persisted shape of a customer record.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	AuditFields
}
