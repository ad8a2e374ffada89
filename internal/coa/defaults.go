package coa

import "github.com/SscSPs/holdco_books/internal/core/domain"

// DefaultChart returns the starter chart for a holding company entity.
// Header rows (AllowPosting false) group the posting accounts under them.
func DefaultChart() []domain.Account {
	return []domain.Account{
		header("10000", "Current Assets", domain.Asset),
		posting("10110", "Operating Cash", domain.Asset, "ASC 305", "CashAndCashEquivalentsAtCarryingValue"),
		posting("10120", "Money Market", domain.Asset, "ASC 305", "CashAndCashEquivalentsAtCarryingValue"),
		posting("11000", "Intercompany Receivables", domain.Asset, "ASC 810", "DueFromRelatedPartiesCurrent"),
		posting("12000", "Prepaid Expenses", domain.Asset, "ASC 340", "PrepaidExpenseCurrent"),
		header("15000", "Investments", domain.Asset),
		posting("15100", "Investments in Subsidiaries", domain.Asset, "ASC 323", "EquityMethodInvestments"),
		posting("15200", "Notes Receivable from Subsidiaries", domain.Asset, "ASC 310", "NotesReceivableRelatedPartiesNoncurrent"),
		header("20000", "Current Liabilities", domain.Liability),
		posting("20100", "Accounts Payable", domain.Liability, "ASC 405", "AccountsPayableCurrent"),
		posting("20200", "Accrued Liabilities", domain.Liability, "ASC 405", "AccruedLiabilitiesCurrent"),
		posting("21000", "Intercompany Payables", domain.Liability, "ASC 810", "DueToRelatedPartiesCurrent"),
		posting("22000", "Income Taxes Payable", domain.Liability, "ASC 740", "AccruedIncomeTaxesCurrent"),
		header("30000", "Equity", domain.Equity),
		posting("30100", "Common Stock", domain.Equity, "ASC 505", "CommonStockValue"),
		posting("30200", "Additional Paid-In Capital", domain.Equity, "ASC 505", "AdditionalPaidInCapital"),
		posting("39000", "Retained Earnings", domain.Equity, "ASC 505", "RetainedEarningsAccumulatedDeficit"),
		header("40000", "Revenue", domain.Revenue),
		posting("40100", "Management Fees", domain.Revenue, "ASC 606", "RevenueFromContractWithCustomerExcludingAssessedTax"),
		posting("40200", "Dividend Income", domain.Revenue, "ASC 321", "DividendIncomeOperating"),
		posting("40300", "Interest Income", domain.Revenue, "ASC 835", "InvestmentIncomeInterest"),
		header("60000", "Operating Expenses", domain.Expense),
		posting("60100", "Professional Fees", domain.Expense, "ASC 720", "ProfessionalFees"),
		posting("60200", "Salaries and Wages", domain.Expense, "ASC 710", "SalariesAndWages"),
		posting("60300", "Depreciation Expense", domain.Expense, "ASC 360", "Depreciation"),
		posting("60400", "Bank Fees", domain.Expense, "ASC 720", "OtherCostAndExpenseOperating"),
		posting("69000", "Income Tax Expense", domain.Expense, "ASC 740", "IncomeTaxExpenseBenefit"),
	}
}

func header(number, name string, t domain.AccountType) domain.Account {
	return domain.Account{
		AccountNumber: number,
		Name:          name,
		AccountType:   t,
		NormalBalance: t.DefaultNormalBalance(),
		AllowPosting:  false,
		IsActive:      true,
	}
}

func posting(number, name string, t domain.AccountType, topic, element string) domain.Account {
	acct := header(number, name, t)
	acct.AllowPosting = true
	acct.PrimaryASCTopic = &topic
	acct.XBRLElementName = &element
	return acct
}
