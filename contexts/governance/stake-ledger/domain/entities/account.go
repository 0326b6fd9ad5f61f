package entities

// StakeAccount holds one participant's deposited balance. Accounts are created
// implicitly on first deposit and persist at zero after full withdrawal.
type StakeAccount struct {
	Owner   string
	Balance uint64
}

// LedgerSummary is the aggregate view of the ledger. TotalStaked always equals
// the sum of all account balances; credit/debit mutate both together.
type LedgerSummary struct {
	TotalStaked uint64
	Accounts    int
}
