package cart

// Item is one cart line for a user. Quantity is always at least 1; adding a
// product already in the cart merges into the existing line.
type Item struct {
	UserID    int `json:"-"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Line is a cart item enriched for display: catalog details plus the live
// price at read time. Cart prices are advisory, only order creation
// snapshots them.
type Line struct {
	ProductID int      `json:"productId"`
	Name      string   `json:"itemName"`
	Code      string   `json:"itemCode"`
	Images    []string `json:"itemImages"`
	InStock   bool     `json:"inStock"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"price"`
	LineTotal float64  `json:"lineTotal"`
}
