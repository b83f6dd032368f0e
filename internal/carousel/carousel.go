package carousel

// Slide is a homepage banner. Only active slides are served publicly,
// ordered by SortOrder.
type Slide struct {
	ID        int    `json:"slideId"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	ImageURL  string `json:"imageUrl"`
	LinkURL   string `json:"linkUrl,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
}
