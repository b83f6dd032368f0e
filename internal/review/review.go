package review

// Review is a customer rating for a product. One review per user per
// product; a second submission conflicts.
type Review struct {
	ID        int    `json:"reviewId"`
	ProductID int    `json:"productId"`
	UserID    int    `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
