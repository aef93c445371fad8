package aivest

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType identifies the side of a trade.
type TransactionType string

const (
	TxBuy  TransactionType = "BUY"
	TxSell TransactionType = "SELL"
)

// Transaction is one executed trade. Transactions are immutable once
// created; the transaction log is append-only, and only a portfolio
// deletion removes its entries.
type Transaction struct {
	ID          string
	PortfolioID string
	Symbol      string
	Type        TransactionType
	Quantity    int64
	Price       Money // per-share price the trade executed at
	Timestamp   time.Time
	Reasoning   string
}

// TotalAmount returns the cash moved by this transaction.
func (t Transaction) TotalAmount() Money { return t.Price.Mul(t.Quantity) }

func newTransaction(portfolioID, symbol string, typ TransactionType, quantity int64, price Money, reasoning string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Type:        typ,
		Quantity:    quantity,
		Price:       price,
		Timestamp:   time.Now(),
		Reasoning:   reasoning,
	}
}
