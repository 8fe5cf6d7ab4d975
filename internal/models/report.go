package models

// CreditReport is the typed view of one bureau report, extracted from the
// raw nested payload. It is built once per analysis request and consumed
// exactly once by the analyzer.
type CreditReport struct {
	PersonName   string    `json:"person_name"`
	Score        *float64  `json:"score"`
	TotalPastDue int64     `json:"total_past_due"`
	Accounts     []Account `json:"accounts"`
	Enquiries    []Enquiry `json:"enquiries"`
}

// Account is a single tradeline (loan or credit card). Amount fields are
// already normalized to integers; date fields stay raw because the source
// encodings vary and rows display them verbatim.
type Account struct {
	Lender            string          `json:"lender"`
	Type              string          `json:"type"`
	AccountNumber     string          `json:"account_number"`
	OpenFlag          string          `json:"open_flag"`
	Status            string          `json:"status"`
	DateOpened        string          `json:"date_opened"`
	SanctionAmount    int64           `json:"sanction_amount"`
	Balance           int64           `json:"balance"`
	InstallmentAmount int64           `json:"installment_amount"`
	LastPayment       int64           `json:"last_payment"`
	PastDueAmount     int64           `json:"past_due_amount"`
	HighCredit        int64           `json:"high_credit"`
	History           []MonthlyRecord `json:"history"`
}

// MonthlyRecord is one month of an account's payment history.
// Order is preserved as given in the report; it is not assumed sorted.
type MonthlyRecord struct {
	PeriodKey  string `json:"period_key"`
	DPD        int    `json:"dpd"`
	AssetClass string `json:"asset_class"`
}

// AssetClassWriteOff marks a month whose debt was settled with a loss
// to the lender ("Loss" asset classification).
const AssetClassWriteOff = "LSS"

// Enquiry is a lender's request to the bureau for the subject's data.
type Enquiry struct {
	Date    string `json:"date"`
	Purpose string `json:"purpose"`
}
