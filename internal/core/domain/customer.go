package domain

// Customer represents an identity that owns one or more bank accounts.
// Accounts reference the customer by ID; the customer never holds a live
// object graph of its accounts.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"`
	AuditFields
}
