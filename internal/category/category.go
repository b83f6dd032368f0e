package category

// Category is a catalog grouping; products reference it by slug.
type Category struct {
	ID        int    `json:"categoryId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
