package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// DateLayout is the wire format of entry dates.
const DateLayout = "2006-01-02"

// JournalEntryLineRequest is one proposed debit or credit line.
type JournalEntryLineRequest struct {
	AccountID    string          `json:"account_id" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debit_amount" binding:"money" swaggertype:"string" example:"500.00"`
	CreditAmount decimal.Decimal `json:"credit_amount" binding:"money" swaggertype:"string" example:"0.00"`
	Description  string          `json:"description" binding:"max=500"`
}

// CreateJournalEntryRequest is the single creation entry point used by every producer.
type CreateJournalEntryRequest struct {
	EntryDate  string                    `json:"entry_date" binding:"required,datetime=2006-01-02" example:"2025-03-14"`
	EntryType  string                    `json:"entry_type" binding:"omitempty,oneof=Standard Adjusting Closing Reversing"`
	Memo       string                    `json:"memo" binding:"max=2000"`
	Reference  string                    `json:"reference" binding:"max=255"`
	SourceType string                    `json:"source_type" binding:"omitempty,oneof=ManualEntry Mercury BankMatch Depreciation Payroll TaxProvision"`
	SourceID   *string                   `json:"source_id"`
	Lines      []JournalEntryLineRequest `json:"lines" binding:"required,dive"`
}

// UpdateJournalEntryRequest is the draft-only full update. A present lines array replaces every line.
type UpdateJournalEntryRequest struct {
	EntryDate *string                   `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	EntryType *string                   `json:"entry_type" binding:"omitempty,oneof=Standard Adjusting Closing Reversing"`
	Memo      *string                   `json:"memo" binding:"omitempty,max=2000"`
	Reference *string                   `json:"reference" binding:"omitempty,max=255"`
	Lines     []JournalEntryLineRequest `json:"lines" binding:"omitempty,dive"`
}

// PatchJournalEntryRequest updates header fields of any unlocked entry.
// An empty document_id clears the header document.
type PatchJournalEntryRequest struct {
	DocumentID *string `json:"document_id"`
	Memo       *string `json:"memo" binding:"omitempty,max=2000"`
	Reference  *string `json:"reference" binding:"omitempty,max=255"`
}

// ApproveJournalEntryRequest names the approver by external identity.
type ApproveJournalEntryRequest struct {
	ApproverIdentity string `json:"approver_identity" binding:"required,email" example:"controller@example.com"`
}

// RejectJournalEntryRequest carries the reason shown to the preparer.
type RejectJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

// BulkDeleteJournalEntriesRequest lists entries to remove administratively.
type BulkDeleteJournalEntriesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=500,dive,uuid"`
}

// BulkDeleteJournalEntriesResponse reports how many entries were removed.
type BulkDeleteJournalEntriesResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status     string  `form:"status" binding:"omitempty,oneof=draft pending_first_approval pending_final_approval posted"`
	FiscalYear *int    `form:"fiscal_year" binding:"omitempty,min=1900,max=9999"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  *string `form:"next_token"`
}

// JournalEntryLineResponse is one line of an entry.
type JournalEntryLineResponse struct {
	LineNumber        int     `json:"line_number"`
	AccountID         string  `json:"account_id"`
	DebitAmount       string  `json:"debit_amount" example:"500.00"`
	CreditAmount      string  `json:"credit_amount" example:"0.00"`
	Description       string  `json:"description"`
	PrimaryASCTopic   *string `json:"primary_asc_topic,omitempty"`
	XBRLElementName   *string `json:"xbrl_element_name,omitempty"`
	XBRLStandardLabel *string `json:"xbrl_standard_label,omitempty"`
}

// AttachmentResponse is one document link.
type AttachmentResponse struct {
	DocumentID   string    `json:"document_id"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

// JournalEntryResponse is the full representation of an entry.
type JournalEntryResponse struct {
	ID                   string                     `json:"id"`
	EntityID             string                     `json:"entity_id"`
	EntryNumber          string                     `json:"entry_number" example:"JE-2025-000001"`
	EntryDate            string                     `json:"entry_date" example:"2025-03-14"`
	FiscalYear           int                        `json:"fiscal_year"`
	FiscalPeriod         int                        `json:"fiscal_period"`
	EntryType            string                     `json:"entry_type"`
	Memo                 string                     `json:"memo"`
	Reference            string                     `json:"reference"`
	SourceType           string                     `json:"source_type"`
	SourceID             *string                    `json:"source_id,omitempty"`
	DocumentID           *string                    `json:"document_id,omitempty"`
	Status               string                     `json:"status"`
	WorkflowStage        int                        `json:"workflow_stage"`
	IsLocked             bool                       `json:"is_locked"`
	TotalDebits          string                     `json:"total_debits"`
	TotalCredits         string                     `json:"total_credits"`
	CreatedByID          string                     `json:"created_by_id"`
	FirstApprovedByID    *string                    `json:"first_approved_by_id,omitempty"`
	FirstApprovedByEmail *string                    `json:"first_approved_by_email,omitempty"`
	FirstApprovedAt      *time.Time                 `json:"first_approved_at,omitempty"`
	FinalApprovedByID    *string                    `json:"final_approved_by_id,omitempty"`
	FinalApprovedByEmail *string                    `json:"final_approved_by_email,omitempty"`
	FinalApprovedAt      *time.Time                 `json:"final_approved_at,omitempty"`
	PostedAt             *time.Time                 `json:"posted_at,omitempty"`
	RejectionReason      *string                    `json:"rejection_reason,omitempty"`
	Lines                []JournalEntryLineResponse `json:"lines,omitempty"`
	Attachments          []AttachmentResponse       `json:"attachments,omitempty"`
	CreatedAt            time.Time                  `json:"created_at"`
	LastUpdatedAt        time.Time                  `json:"last_updated_at"`
	LastUpdatedBy        string                     `json:"last_updated_by"`
}

// ListJournalEntriesResponse is one page of entry headers.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"next_token,omitempty"`
}

// AuditLogResponse is one audit row.
type AuditLogResponse struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	PerformedByID string    `json:"performed_by_id"`
	PerformedAt   time.Time `json:"performed_at"`
	Comment       string    `json:"comment,omitempty"`
	OldValue      *string   `json:"old_value,omitempty"`
	NewValue      *string   `json:"new_value,omitempty"`
}

// AttachDocumentsRequest links documents and optionally sets the primary one.
type AttachDocumentsRequest struct {
	DocumentIDs       []string `json:"document_ids" binding:"omitempty,max=100,dive,required"`
	PrimaryDocumentID *string  `json:"primary_document_id"`
}

// ReorderAttachmentsRequest lists documents in their new display order.
type ReorderAttachmentsRequest struct {
	DocumentIDs       []string `json:"document_ids" binding:"required,dive,required"`
	PrimaryDocumentID *string  `json:"primary_document_id"`
}

// ToLineInputs converts request lines to domain inputs.
func ToLineInputs(lines []JournalEntryLineRequest) []domain.LineInput {
	if lines == nil {
		return nil
	}
	out := make([]domain.LineInput, len(lines))
	for i, l := range lines {
		out[i] = domain.LineInput{
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			Description:  l.Description,
		}
	}
	return out
}

// ToJournalEntryResponse converts a domain.JournalEntry to its wire form.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:                   e.JournalEntryID,
		EntityID:             e.EntityID,
		EntryNumber:          e.EntryNumber,
		EntryDate:            e.EntryDate.Format(DateLayout),
		FiscalYear:           e.FiscalYear,
		FiscalPeriod:         e.FiscalPeriod,
		EntryType:            string(e.EntryType),
		Memo:                 e.Memo,
		Reference:            e.Reference,
		SourceType:           string(e.SourceType),
		SourceID:             e.SourceID,
		DocumentID:           e.DocumentID,
		Status:               string(e.Status),
		WorkflowStage:        e.Status.WorkflowStage(),
		IsLocked:             e.IsLocked,
		TotalDebits:          e.TotalDebits().StringFixed(2),
		TotalCredits:         e.TotalCredits().StringFixed(2),
		CreatedByID:          e.CreatedByID,
		FirstApprovedByID:    e.FirstApprovedByID,
		FirstApprovedByEmail: e.FirstApprovedByEmail,
		FirstApprovedAt:      e.FirstApprovedAt,
		FinalApprovedByID:    e.FinalApprovedByID,
		FinalApprovedByEmail: e.FinalApprovedByEmail,
		FinalApprovedAt:      e.FinalApprovedAt,
		PostedAt:             e.PostedAt,
		RejectionReason:      e.RejectionReason,
		CreatedAt:            e.CreatedAt,
		LastUpdatedAt:        e.LastUpdatedAt,
		LastUpdatedBy:        e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalEntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalEntryLineResponse{
				LineNumber:        l.LineNumber,
				AccountID:         l.AccountID,
				DebitAmount:       l.DebitAmount.StringFixed(2),
				CreditAmount:      l.CreditAmount.StringFixed(2),
				Description:       l.Description,
				PrimaryASCTopic:   l.PrimaryASCTopic,
				XBRLElementName:   l.XBRLElementName,
				XBRLStandardLabel: l.XBRLStandardLabel,
			}
		}
	}
	if len(e.Attachments) > 0 {
		resp.Attachments = make([]AttachmentResponse, len(e.Attachments))
		for i, a := range e.Attachments {
			resp.Attachments[i] = AttachmentResponse{
				DocumentID:   a.DocumentID,
				DisplayOrder: a.DisplayOrder,
				IsPrimary:    a.IsPrimary,
				CreatedAt:    a.CreatedAt,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}

// ToAuditLogResponses converts audit rows to their wire form.
func ToAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		res[i] = AuditLogResponse{
			ID:            l.AuditLogID,
			Action:        string(l.Action),
			PerformedByID: l.PerformedByID,
			PerformedAt:   l.PerformedAt,
			Comment:       l.Comment,
			OldValue:      l.OldValue,
			NewValue:      l.NewValue,
		}
	}
	return res
}
