// Package categorize assigns spend categories to transactions by matching
// their descriptions against the vendor pattern table.
package categorize

import (
	"context"
	"sync"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/rules"
)

// Categorizer classifies transactions against a read-only rule table. It is
// a pure function of the transaction and the table: no side effects, safe
// for concurrent use.
type Categorizer struct {
	table *rules.Table
}

// New creates a categorizer. A nil table is a fatal configuration error.
func New(table *rules.Table) (*Categorizer, error) {
	if table == nil || table.Len() == 0 {
		return nil, common.ErrEmptyRuleTable
	}
	return &Categorizer{table: table}, nil
}

// Categorize classifies one transaction. The first rule matching the
// normalized description in priority order wins; uncategorizable
// transactions get CategoryUnknown with confidence 0, never an error.
func (c *Categorizer) Categorize(txn model.Transaction) model.CategorizedTransaction {
	result := model.CategorizedTransaction{
		Transaction: txn,
		Category:    model.CategoryUnknown,
		Confidence:  0,
		MatchedRule: model.RuleUnmatched,
	}

	normalized := rules.Normalize(txn.Description)
	if normalized == "" {
		return result
	}

	rule, ok := c.table.Match(normalized, txn.Amount)
	if !ok {
		return result
	}

	result.Category = rule.Category
	result.Confidence = rule.Confidence
	result.MatchedRule = rule.Name
	return result
}

// CategorizeBatch classifies transactions concurrently. Each transaction is
// classified independently, so results are identical regardless of worker
// count, and output order mirrors input order.
func (c *Categorizer) CategorizeBatch(ctx context.Context, txns []model.Transaction, workers int) ([]model.CategorizedTransaction, error) {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(txns) {
		workers = len(txns)
	}

	results := make([]model.CategorizedTransaction, len(txns))
	if len(txns) == 0 {
		return results, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = c.Categorize(txns[i])
			}
		}()
	}

	var err error
feed:
	for i := range txns {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

// RuleCount returns the number of rules backing this categorizer.
func (c *Categorizer) RuleCount() int {
	return c.table.Len()
}
