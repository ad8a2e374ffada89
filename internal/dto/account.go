package dto

import (
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         string  `json:"account_id"`
	AccountNumber     string  `json:"account_number"`
	AccountName       string  `json:"account_name"`
	AccountType       string  `json:"account_type"`
	NormalBalance     string  `json:"normal_balance"`
	AllowPosting      bool    `json:"allow_posting"`
	IsActive          bool    `json:"is_active"`
	PrimaryASCTopic   *string `json:"primary_asc_topic,omitempty"`
	XBRLElementName   *string `json:"xbrl_element_name,omitempty"`
	XBRLStandardLabel *string `json:"xbrl_standard_label,omitempty"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ActiveOnly bool `form:"active_only,default=true"`
}

// ListAccountsResponse wraps the chart of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		AccountNumber:     acc.AccountNumber,
		AccountName:       acc.Name,
		AccountType:       string(acc.AccountType),
		NormalBalance:     string(acc.NormalBalance),
		AllowPosting:      acc.AllowPosting,
		IsActive:          acc.IsActive,
		PrimaryASCTopic:   acc.PrimaryASCTopic,
		XBRLElementName:   acc.XBRLElementName,
		XBRLStandardLabel: acc.XBRLStandardLabel,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
