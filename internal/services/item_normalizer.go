package services

import (
	"errors"
	"strings"
	"time"

	"github.com/campus-services/lostfound-backend/internal/models"
)

// InvalidItemMessage is shown verbatim to end users whose own report turned
// out to be malformed.
const InvalidItemMessage = "This item was incorrectly reported. If this was your report, please submit it again or contact Campus Security."

var (
	// ErrInvalidItemData marks a stored document that is structurally
	// unusable for public display: a required field is missing or the
	// status is not a recognized value.
	ErrInvalidItemData = errors.New("invalid item data")

	// ErrItemNotFound means no storage location held a matching document.
	ErrItemNotFound = errors.New("item not found")
)

// normalizeItem converts a raw document field bag into a strict ItemDetails
// value or fails with ErrInvalidItemData. It is applied to every document
// before it leaves the service; there is no trusted document source. Image
// references are not resolved here — callers enrich the result with the
// projection they need (full list or thumbnail).
func normalizeItem(id string, data map[string]any) (*models.ItemDetails, error) {
	title := stringField(data, "title")
	referenceCode := stringField(data, "referenceCode")
	dateReported, hasDate := normalizeDate(data["dateReported"])
	status := models.ItemStatus(stringField(data, "status"))

	if strings.TrimSpace(title) == "" ||
		strings.TrimSpace(referenceCode) == "" ||
		!hasDate ||
		!status.Valid() {
		return nil, ErrInvalidItemData
	}

	return &models.ItemDetails{
		ID:            id,
		Title:         title,
		Description:   stringField(data, "description"),
		Status:        status,
		Location:      stringField(data, "location"),
		ReferenceCode: referenceCode,
		DateReported:  dateReported,
		ClaimStatus:   models.ClaimStatus(stringField(data, "claimStatus")),
	}, nil
}

// normalizeDate handles the two shapes dateReported is stored in: an
// ISO-8601 string, used as-is when non-blank, or a store-native timestamp,
// converted to RFC3339 UTC. Any other shape counts as absent.
func normalizeDate(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case time.Time:
		return v.UTC().Format(time.RFC3339), true
	default:
		return "", false
	}
}

// imageRefs extracts the raw image references of a document: the imageUrls
// array when present, otherwise photoUrl as a single-element list. Blank
// entries are dropped.
func imageRefs(data map[string]any) []string {
	if raw, ok := data["imageUrls"].([]any); ok {
		refs := make([]string, 0, len(raw))
		for _, entry := range raw {
			if ref, ok := entry.(string); ok && strings.TrimSpace(ref) != "" {
				refs = append(refs, ref)
			}
		}
		return refs
	}
	if photo, ok := data["photoUrl"].(string); ok && strings.TrimSpace(photo) != "" {
		return []string{photo}
	}
	return nil
}

func stringField(data map[string]any, key string) string {
	value, _ := data[key].(string)
	return value
}
