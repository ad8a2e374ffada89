package mapping

import (
	"github.com/SscSPs/holdco_books/internal/core/domain"
	"github.com/SscSPs/holdco_books/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		EntityID:          d.EntityID,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		AccountType:       string(d.AccountType),
		NormalBalance:     string(d.NormalBalance),
		AllowPosting:      d.AllowPosting,
		IsActive:          d.IsActive,
		PrimaryASCTopic:   d.PrimaryASCTopic,
		XBRLElementName:   d.XBRLElementName,
		XBRLStandardLabel: d.XBRLStandardLabel,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		EntityID:          m.EntityID,
		AccountNumber:     m.AccountNumber,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		NormalBalance:     domain.NormalBalance(m.NormalBalance),
		AllowPosting:      m.AllowPosting,
		IsActive:          m.IsActive,
		PrimaryASCTopic:   m.PrimaryASCTopic,
		XBRLElementName:   m.XBRLElementName,
		XBRLStandardLabel: m.XBRLStandardLabel,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
