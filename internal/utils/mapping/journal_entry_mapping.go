package mapping

import (
	"github.com/SscSPs/holdco_books/internal/core/domain"
	"github.com/SscSPs/holdco_books/internal/models"
)

// ToModelJournalEntry converts the header of a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:       d.JournalEntryID,
		EntityID:             d.EntityID,
		EntryNumber:          d.EntryNumber,
		EntryDate:            d.EntryDate,
		FiscalYear:           d.FiscalYear,
		FiscalPeriod:         d.FiscalPeriod,
		EntryType:            string(d.EntryType),
		Memo:                 d.Memo,
		Reference:            d.Reference,
		SourceType:           string(d.SourceType),
		SourceID:             d.SourceID,
		DocumentID:           d.DocumentID,
		Status:               string(d.Status),
		IsLocked:             d.IsLocked,
		CreatedByID:          d.CreatedByID,
		FirstApprovedByID:    d.FirstApprovedByID,
		FirstApprovedByEmail: d.FirstApprovedByEmail,
		FirstApprovedAt:      d.FirstApprovedAt,
		FinalApprovedByID:    d.FinalApprovedByID,
		FinalApprovedByEmail: d.FinalApprovedByEmail,
		FinalApprovedAt:      d.FinalApprovedAt,
		PostedAt:             d.PostedAt,
		RejectionReason:      d.RejectionReason,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines or attachments
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:       m.JournalEntryID,
		EntityID:             m.EntityID,
		EntryNumber:          m.EntryNumber,
		EntryDate:            m.EntryDate,
		FiscalYear:           m.FiscalYear,
		FiscalPeriod:         m.FiscalPeriod,
		EntryType:            domain.EntryType(m.EntryType),
		Memo:                 m.Memo,
		Reference:            m.Reference,
		SourceType:           domain.SourceType(m.SourceType),
		SourceID:             m.SourceID,
		DocumentID:           m.DocumentID,
		Status:               domain.EntryStatus(m.Status),
		IsLocked:             m.IsLocked,
		CreatedByID:          m.CreatedByID,
		FirstApprovedByID:    m.FirstApprovedByID,
		FirstApprovedByEmail: m.FirstApprovedByEmail,
		FirstApprovedAt:      m.FirstApprovedAt,
		FinalApprovedByID:    m.FinalApprovedByID,
		FinalApprovedByEmail: m.FinalApprovedByEmail,
		FinalApprovedAt:      m.FinalApprovedAt,
		PostedAt:             m.PostedAt,
		RejectionReason:      m.RejectionReason,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:            d.LineID,
		JournalEntryID:    d.JournalEntryID,
		LineNumber:        d.LineNumber,
		AccountID:         d.AccountID,
		DebitAmount:       d.DebitAmount,
		CreditAmount:      d.CreditAmount,
		Description:       d.Description,
		PrimaryASCTopic:   d.PrimaryASCTopic,
		XBRLElementName:   d.XBRLElementName,
		XBRLStandardLabel: d.XBRLStandardLabel,
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:            m.LineID,
		JournalEntryID:    m.JournalEntryID,
		LineNumber:        m.LineNumber,
		AccountID:         m.AccountID,
		DebitAmount:       m.DebitAmount,
		CreditAmount:      m.CreditAmount,
		Description:       m.Description,
		PrimaryASCTopic:   m.PrimaryASCTopic,
		XBRLElementName:   m.XBRLElementName,
		XBRLStandardLabel: m.XBRLStandardLabel,
	}
}

// ToModelAttachment converts a domain attachment link to a model row
func ToModelAttachment(d domain.JournalEntryAttachment) models.JournalEntryAttachment {
	return models.JournalEntryAttachment{
		JournalEntryID: d.JournalEntryID,
		DocumentID:     d.DocumentID,
		DisplayOrder:   d.DisplayOrder,
		IsPrimary:      d.IsPrimary,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainAttachment converts a model attachment row to a domain link
func ToDomainAttachment(m models.JournalEntryAttachment) domain.JournalEntryAttachment {
	return domain.JournalEntryAttachment{
		JournalEntryID: m.JournalEntryID,
		DocumentID:     m.DocumentID,
		DisplayOrder:   m.DisplayOrder,
		IsPrimary:      m.IsPrimary,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToModelAuditLog converts a domain audit row to a model row. AuditSeq is assigned by the database.
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditLogID:     d.AuditLogID,
		JournalEntryID: d.JournalEntryID,
		Action:         string(d.Action),
		PerformedByID:  d.PerformedByID,
		PerformedAt:    d.PerformedAt,
		Comment:        d.Comment,
		OldValue:       d.OldValue,
		NewValue:       d.NewValue,
	}
}

// ToDomainAuditLog converts a model audit row to a domain audit row
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID:     m.AuditLogID,
		JournalEntryID: m.JournalEntryID,
		Action:         domain.AuditAction(m.Action),
		PerformedByID:  m.PerformedByID,
		PerformedAt:    m.PerformedAt,
		Comment:        m.Comment,
		OldValue:       m.OldValue,
		NewValue:       m.NewValue,
		Sequence:       m.AuditSeq,
	}
}
