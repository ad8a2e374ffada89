package models

// Account is a row of the accounts table.
type Account struct {
	AccountID         string  `db:"account_id"`
	EntityID          string  `db:"entity_id"`
	AccountNumber     string  `db:"account_number"`
	Name              string  `db:"name"`
	AccountType       string  `db:"account_type"`
	NormalBalance     string  `db:"normal_balance"`
	AllowPosting      bool    `db:"allow_posting"`
	IsActive          bool    `db:"is_active"`
	PrimaryASCTopic   *string `db:"primary_asc_topic"`
	XBRLElementName   *string `db:"xbrl_element_name"`
	XBRLStandardLabel *string `db:"xbrl_standard_label"`
	AuditFields
}
