package model

// FinancialSnapshot is the response of /stock/:ticker.
type FinancialSnapshot struct {
	CompanyName      string                `json:"companyName"`
	StockPrice       Value                 `json:"stockPrice"`
	PERatio          Value                 `json:"peRatio"`
	Industry         string                `json:"industry,omitempty"`
	Description      string                `json:"description,omitempty"`
	MarginData       []MarginQuarter       `json:"marginData"`
	BalanceSheetData []BalanceSheetQuarter `json:"balanceSheetData"`
	QuarterlyData    []QuarterlyFinancials `json:"quarterlyData"`
	Error            string                `json:"error,omitempty"`
}

// MarginQuarter holds margins in percent. A margin is missing when revenue was zero.
type MarginQuarter struct {
	Date            string `json:"date"`
	GrossMargin     Value  `json:"grossMargin"`
	OperatingMargin Value  `json:"operatingMargin"`
	NetIncomeMargin Value  `json:"netIncomeMargin"`
}

// BalanceSheetQuarter splits assets and liabilities into current and long term.
type BalanceSheetQuarter struct {
	Date                string `json:"date"`
	CurrentAssets       Value  `json:"currentAssets"`
	CurrentLiabilities  Value  `json:"currentLiabilities"`
	LongTermAssets      Value  `json:"longTermAssets"`
	LongTermLiabilities Value  `json:"longTermLiabilities"`
}

// QuarterlyFinancials are the income and cash flow figures of one quarter.
type QuarterlyFinancials struct {
	Date              string `json:"date"`
	Revenue           Value  `json:"revenue"`
	OperatingIncome   Value  `json:"operatingIncome"`
	NetIncome         Value  `json:"netIncome"`
	CashBalance       Value  `json:"cashBalance"`
	OperatingCashFlow Value  `json:"operatingCashFlow"`
	FreeCashFlow      Value  `json:"freeCashFlow"`
}
