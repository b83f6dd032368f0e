package pricing

import "math"

// StoreDiscountMultiplier is the storewide 10% discount baked into every
// computed sale price. Store policy, applied to weighted and flat products
// alike.
const StoreDiscountMultiplier = 0.90

// Mode is the pricing mode of a product. A product is Weighted when it has a
// net silver weight; its sale price then tracks the live silver rate. A Flat
// product is priced from its base price alone.
type Mode int

const (
	Flat Mode = iota
	Weighted
)

// Input carries the product attributes the engine needs. Construct it with
// FlatInput or WeightedInput rather than null-checking weight fields at call
// sites.
type Input struct {
	Mode             Mode
	BasePrice        float64
	NetWeight        float64
	MakingChargeRate float64
}

func FlatInput(basePrice float64) Input {
	return Input{Mode: Flat, BasePrice: basePrice}
}

func WeightedInput(basePrice, netWeight, makingChargeRate float64) Input {
	return Input{
		Mode:             Weighted,
		BasePrice:        basePrice,
		NetWeight:        netWeight,
		MakingChargeRate: makingChargeRate,
	}
}

// FinalPrice computes the sale price of a product at the given silver rate
// per gram.
//
// Weighted: round2((base + netWeight*rate + makingChargeRate*netWeight) * 0.9)
// Flat:     round2(base * 0.9)
//
// Rounding happens exactly once, at the end. The function is pure; the same
// input and rate always produce the same price, which is what keeps catalog,
// cart, wishlist and order snapshots in agreement.
func FinalPrice(in Input, ratePerGram float64) float64 {
	if in.Mode == Weighted {
		silverCost := in.NetWeight * ratePerGram
		makingCharges := in.MakingChargeRate * in.NetWeight
		total := in.BasePrice + silverCost + makingCharges
		return Round2(total * StoreDiscountMultiplier)
	}
	return Round2(in.BasePrice * StoreDiscountMultiplier)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
