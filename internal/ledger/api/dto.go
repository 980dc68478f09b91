package api

// OpenAccountReq is the account-opening payload.
type OpenAccountReq struct {
	BranchCode int16  `json:"branch_code" binding:"required"`
	BankCode   int16  `json:"bank_code" binding:"required"`
	Holder     string `json:"holder" binding:"required"`
}

// PostEntryReq is the entry-posting payload. Amount must be a decimal
// string so no precision is lost in JSON; date is dd/mm/yyyy.
type PostEntryReq struct {
	AccountID int64  `json:"account_id" binding:"required"`
	Memo      string `json:"memo"`
	Amount    string `json:"amount" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TypeCode  int16  `json:"type_code" binding:"required"`
}

// UpdateEntryReq is a partial update; absent fields keep prior values.
type UpdateEntryReq struct {
	Memo     *string `json:"memo"`
	Amount   *string `json:"amount"`
	Date     *string `json:"date"`
	TypeCode *int16  `json:"type_code"`
}

// AccountResp mirrors a stored account back to callers.
type AccountResp struct {
	ID         int64  `json:"id"`
	BranchCode int16  `json:"branch_code"`
	Branch     string `json:"branch"`
	BankCode   int16  `json:"bank_code"`
	Bank       string `json:"bank"`
	Holder     string `json:"holder"`
	Balance    string `json:"balance"`
	Active     bool   `json:"active"`
}

// EntryResp mirrors a stored entry back to callers.
type EntryResp struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	Memo      string `json:"memo"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	TypeCode  int16  `json:"type_code"`
	Type      string `json:"type"`
}

// PostEntryResp returns the stored entry together with the reconciled
// account balance.
type PostEntryResp struct {
	Entry   EntryResp `json:"entry"`
	Balance string    `json:"balance"`
}
