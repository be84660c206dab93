package request

// ItemRequest is the body for creating or renaming an item
type ItemRequest struct {
	Name        string `json:"name" binding:"max=255"`
	Description string `json:"description"`
}

// ItemFilterRequest represents item search parameters
type ItemFilterRequest struct {
	Search string `form:"search"`
}

// SimilarItemsRequest asks for catalog names close to a candidate name.
// A zero threshold falls back to the configured one.
type SimilarItemsRequest struct {
	Name      string  `form:"name" binding:"required"`
	Threshold float64 `form:"threshold" binding:"omitempty,gte=0,lte=100"`
}
