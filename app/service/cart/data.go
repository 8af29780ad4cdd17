package cart

import "shopfront/app/service/catalog"

type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Snapshot is a read-only projection of one session's cart.
type Snapshot struct {
	Items      []Line  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

type jsonLineItem struct {
	Session string `json:"session"`
	Items   []Line `json:"items"`
}
