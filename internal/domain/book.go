package domain

import "github.com/shopspring/decimal"

// Book is the catalogue record a reservation rents a copy of
type Book struct {
	ExternalID        int64           `json:"external_id" db:"external_id"`
	Title             string          `json:"title" db:"title"`
	Price             decimal.Decimal `json:"price" db:"price"`
	StockQuantity     int             `json:"stock_quantity" db:"stock_quantity"`
	AvailableQuantity int             `json:"available_quantity" db:"available_quantity"`
}

// IsAvailable reports whether at least one copy can be rented
func (b *Book) IsAvailable() bool {
	return b.AvailableQuantity > 0
}
