package catalog

type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	DateAdded    string `json:"dateAdded"`
}

type Location struct {
	ID           int64  `json:"id"`
	LocationName string `json:"locationName"`
	Description  string `json:"description"`
	DateAdded    string `json:"dateAdded"`
}
