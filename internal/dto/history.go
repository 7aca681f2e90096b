package dto

import "github.com/shopspring/decimal"

// HistoryParams defines query parameters for the account history endpoint.
// Page is 0-indexed.
type HistoryParams struct {
	Page     int `form:"page,default=0"`
	PageSize int `form:"pageSize,default=10"`
}

// AccountHistoryResponse is one page of an account's operation history plus
// its current balance.
type AccountHistoryResponse struct {
	AccountID  string              `json:"accountID"`
	Balance    decimal.Decimal     `json:"balance"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
	Operations []OperationResponse `json:"operations"`
}
