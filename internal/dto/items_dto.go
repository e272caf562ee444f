package dto

import "github.com/campus-services/lostfound-backend/internal/models"

// ItemListResponse is the paginated list shape produced by the item query
// engine. TotalPages is authoritative for navigation: items may hold fewer
// entries than the limit when stored documents fail normalization.
type ItemListResponse struct {
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"totalPages"`
	HasNextPage bool                 `json:"hasNextPage"`
	HasPrevPage bool                 `json:"hasPrevPage"`
	Items       []models.ItemSummary `json:"items"`
}
