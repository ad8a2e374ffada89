package domain

import (
	"fmt"

	"github.com/SscSPs/holdco_books/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance normally sits.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "Debit"
	NormalCredit NormalBalance = "Credit"
)

// DefaultNormalBalance returns the conventional normal balance for an account type.
func (t AccountType) DefaultNormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// Account is one row of an entity's chart of accounts.
// The journal engine never writes accounts; it only reads them at line-creation time.
type Account struct {
	AccountID         string        `json:"accountID"`
	EntityID          string        `json:"entityID"`
	AccountNumber     string        `json:"accountNumber"` // e.g. "10110"
	Name              string        `json:"name"`
	AccountType       AccountType   `json:"accountType"`
	NormalBalance     NormalBalance `json:"normalBalance"`
	AllowPosting      bool          `json:"allowPosting"` // false for header/rollup accounts
	IsActive          bool          `json:"isActive"`     // soft deactivation flag
	PrimaryASCTopic   *string       `json:"primaryAscTopic,omitempty"`
	XBRLElementName   *string       `json:"xbrlElementName,omitempty"`
	XBRLStandardLabel *string       `json:"xbrlStandardLabel,omitempty"`
	AuditFields
}

// CheckPostable returns a validation error when the account cannot take a journal line.
func (a Account) CheckPostable() error {
	if !a.IsActive {
		return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, a.AccountNumber, a.AccountID)
	}
	if !a.AllowPosting {
		return fmt.Errorf("%w: account %s (%s) does not allow direct posting", apperrors.ErrValidation, a.AccountNumber, a.AccountID)
	}
	return nil
}
