package product

import "github.com/novarajewels/jewellery-backend/internal/pricing"

// MaxImages bounds the gallery per product; at least one image is required.
const MaxImages = 5

// Weight holds the metal weights of a piece in grams. NetWeight is the
// silver content the live price tracks; when it is zero the product is
// priced flat from its base price.
type Weight struct {
	NetWeight    float64 `json:"netWeight"`
	GrossWeight  float64 `json:"grossWeight"`
	SilverWeight float64 `json:"silverWeight"`
}

// Product is a catalog entry. StoredFinalPrice is a cached snapshot written
// on create/update; for weighted products the served price is always
// recomputed from the current silver rate, so the snapshot is only
// authoritative when NetWeight == 0.
type Product struct {
	ID               int      `json:"productId"`
	Name             string   `json:"itemName"`
	Code             string   `json:"itemCode"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category"`
	BasePrice        float64  `json:"basePrice"`
	Weight           Weight   `json:"weight"`
	MakingChargeRate float64  `json:"makingChargeRate"`
	StoredFinalPrice float64  `json:"finalPrice"`
	InStock          bool     `json:"inStock"`
	DeliveryType     string   `json:"deliveryType,omitempty"`
	Views            int      `json:"views"`
	OrdersCount      int      `json:"ordersCount"`
	WishlistedCount  int      `json:"wishlistedCount"`
	Images           []string `json:"itemImages"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// PriceInput maps the product onto the pricing engine's tagged input.
func (p Product) PriceInput() pricing.Input {
	if p.Weight.NetWeight > 0 {
		return pricing.WeightedInput(p.BasePrice, p.Weight.NetWeight, p.MakingChargeRate)
	}
	return pricing.FlatInput(p.BasePrice)
}

// Filter narrows catalog listings.
type Filter struct {
	Category string
	Search   string
	InStock  *bool
}
