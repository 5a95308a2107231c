package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string // Raw transaction description, vendor-supplied
	Location    string // Free-text place name, may be empty
	AccountID   string
	Hash        string
	Amount      float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// RuleUnmatched is the sentinel rule name recorded when no pattern matched.
const RuleUnmatched = "unmatched"

// CategorizedTransaction is a transaction with its assigned category.
// Categorization is idempotent: the same transaction against the same rule
// table always yields the same category, confidence, and matched rule.
type CategorizedTransaction struct {
	Transaction
	Category    Category
	MatchedRule string
	Confidence  float64
}

// IsUnknown reports whether no rule matched this transaction.
func (ct CategorizedTransaction) IsUnknown() bool {
	return ct.Category == CategoryUnknown
}
