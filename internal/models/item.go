package models

// ReportKind distinguishes lost reports from found reports.
type ReportKind string

const (
	KindLost  ReportKind = "LOST"
	KindFound ReportKind = "FOUND"
)

// ItemStatus is the staff-managed lifecycle state of a report. Status
// transitions happen in an external validation workflow; this service only
// reads them.
type ItemStatus string

const (
	StatusReported          ItemStatus = "REPORTED"
	StatusPendingValidation ItemStatus = "PENDING_VALIDATION"
	StatusValidated         ItemStatus = "VALIDATED"
	StatusClaimed           ItemStatus = "CLAIMED"
	StatusReturned          ItemStatus = "RETURNED"
	StatusArchived          ItemStatus = "ARCHIVED"
)

// Valid reports whether s is one of the six recognized statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusReported, StatusPendingValidation, StatusValidated,
		StatusClaimed, StatusReturned, StatusArchived:
		return true
	}
	return false
}

// ClaimStatus is attached by the external claim workflow. It is passed
// through to clients without validation.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "PENDING"
	ClaimApproved  ClaimStatus = "APPROVED"
	ClaimRejected  ClaimStatus = "REJECTED"
	ClaimCancelled ClaimStatus = "CANCELLED"
)

// ItemDetails is the strict public projection of a stored report. Every
// document crosses through the normalizer before it becomes one of these.
type ItemDetails struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Status        ItemStatus  `json:"status"`
	Location      string      `json:"location,omitempty"`
	ReferenceCode string      `json:"referenceCode"`
	DateReported  string      `json:"dateReported"`
	ImageURLs     []string    `json:"imageUrls,omitempty"`
	ClaimStatus   ClaimStatus `json:"claimStatus,omitempty"`
}

// ItemSummary is the list-view projection with a single thumbnail.
type ItemSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Status        ItemStatus `json:"status"`
	ReferenceCode string     `json:"referenceCode"`
	Location      string     `json:"location,omitempty"`
	DateReported  string     `json:"dateReported"`
	ThumbnailURL  string     `json:"thumbnailUrl,omitempty"`
}

// IsPubliclyVisible is the single visibility rule for the detail path: only
// VALIDATED items may be exposed. The list query enforces the same rule by
// filtering on status at the store level.
func (d *ItemDetails) IsPubliclyVisible() bool {
	return d.Status == StatusValidated
}
