package marketplace

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Marketplace Value Objects
// ---------------------------------------------------------------------------

// Order is one seller order as reported by the marketplace orders endpoint.
// Money fields arrive as decimal strings on the wire and are kept as decimals
// so downstream consumers never do float arithmetic on them.
type Order struct {
	// OrderID is the marketplace order identifier
	OrderID int64 `json:"order_id"`
	// OrderNumber is the customer-facing order number
	OrderNumber int64 `json:"order_number"`
	// Statuses lists the current status of the order's items
	Statuses []string `json:"statuses"`
	// PaymentMethod is the buyer's payment method (e.g. COD)
	PaymentMethod string `json:"payment_method"`
	// Price is the total order amount
	Price decimal.Decimal `json:"price"`
	// ItemsCount is the number of line items
	ItemsCount int `json:"items_count"`
	// CustomerFirstName is the buyer's first name as shown by the platform
	CustomerFirstName string `json:"customer_first_name"`
	// CreatedAt is the platform's order creation timestamp string
	CreatedAt string `json:"created_at"`
	// UpdatedAt is the platform's last update timestamp string
	UpdatedAt string `json:"updated_at"`
}

// Payout is one payout-status record from the marketplace finance endpoint
type Payout struct {
	// StatementNumber identifies the payout statement
	StatementNumber string `json:"statement_number"`
	// PayoutAmount is the net amount paid (or to be paid) to the seller
	PayoutAmount decimal.Decimal `json:"payout_amount"`
	// ItemRevenue is the gross item revenue in the statement period
	ItemRevenue decimal.Decimal `json:"item_revenue"`
	// FeesTotal is the total fees deducted
	FeesTotal decimal.Decimal `json:"fees_total"`
	// Paid is the platform's paid flag ("1" when settled)
	Paid string `json:"paid"`
	// CreatedAt is the statement creation timestamp string
	CreatedAt string `json:"created_at"`
	// UpdatedAt is the statement update timestamp string
	UpdatedAt string `json:"updated_at"`
}

// TaggedOrder is an order annotated with the owning account's public identity
type TaggedOrder struct {
	Order
	// Account identifies which connected seller the order belongs to
	Account AccountIdentity `json:"account"`
}

// TaggedPayout is a payout record annotated with the owning account's
// public identity
type TaggedPayout struct {
	Payout
	// Account identifies which connected seller the payout belongs to
	Account AccountIdentity `json:"account"`
}

// AccountFailure records one account whose call failed during fan-out
type AccountFailure struct {
	// Account is the public identity of the failed account
	Account AccountIdentity
	// Err is the underlying per-account error
	Err error
}
