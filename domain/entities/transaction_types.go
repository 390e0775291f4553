package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Lottery transactions
	TransactionTypeTicketPurchase TransactionType = "ticket_purchase"
	TransactionTypeWinnings       TransactionType = "winnings"

	// Wallet transactions
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// IsCredit returns true if the transaction type increases the balance
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeDeposit || tt == TransactionTypeWinnings
}

// IsDebit returns true if the transaction type decreases the balance
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeTicketPurchase || tt == TransactionTypeWithdrawal
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
