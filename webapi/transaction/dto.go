package transaction

import (
	"github.com/skarim/finledger/pkg/dto"
)

// CreateRequest is the body for adding a single transaction. Field
// presence and content are checked by the domain validator so missing
// fields are reported together with the other findings.
type CreateRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// UpdateRequest is a partial edit; absent fields are left untouched.
type UpdateRequest struct {
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// BulkDeleteRequest targets specific ids; an empty list means every
// non-deleted transaction.
type BulkDeleteRequest struct {
	IDs []string `json:"ids,omitempty"`
}

// ListResponse is one page of the ledger.
type ListResponse struct {
	Transactions []*dto.TransactionRead `json:"transactions"`
	TotalCount   int64                  `json:"total_count"`
	Page         int                    `json:"page"`
	Limit        int                    `json:"limit"`
}
