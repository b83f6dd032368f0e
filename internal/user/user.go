package user

// User is a storefront account. Cart and wishlist contents live on the same
// row but are managed by the cart and wishlist packages.
type User struct {
	ID       int    `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`

	// IsAdmin unlocks the operator surface (catalog writes, coupon CRUD,
	// order administration). IsPrivileged additionally allows the payment
	// test-order path; both flags are set out of band, never via the API.
	IsAdmin      bool `json:"isAdmin"`
	IsPrivileged bool `json:"isPrivileged,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
