package dto

type CreateLostReportRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"omitempty,min=1"`
	LastSeenLocation string `json:"lastSeenLocation" validate:"omitempty,min=1"`
	LastSeenAt       string `json:"lastSeenAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ContactEmail     string `json:"contactEmail" validate:"omitempty,email"`
	PhotoDataURL     string `json:"photoDataUrl" validate:"omitempty,startswith=data:image/"`
}

type CreateFoundReportRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"omitempty,min=1"`
	FoundLocation string `json:"foundLocation" validate:"required"`
	FoundAt       string `json:"foundAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	PhotoDataURL  string `json:"photoDataUrl" validate:"required,startswith=data:image/"`
}

type CreateReportResponse struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"referenceCode"`
}
