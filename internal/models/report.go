package models

// Report is the persisted record of a lost or found claim. Documents are
// stored as loosely-typed field bags; this struct is the typed shape the
// submission flow works with before writing.
type Report struct {
	ID            string     `json:"id"`
	Kind          ReportKind `json:"kind"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        ItemStatus `json:"status"`
	ReferenceCode string     `json:"referenceCode"`
	Location      string     `json:"location,omitempty"`
	DateReported  string     `json:"dateReported"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	PhotoURL      string     `json:"photoUrl,omitempty"`
}

// Fields returns the document field bag to persist. Optional fields are
// omitted entirely rather than stored as empty strings.
func (r *Report) Fields() map[string]any {
	fields := map[string]any{
		"kind":          string(r.Kind),
		"title":         r.Title,
		"status":        string(r.Status),
		"referenceCode": r.ReferenceCode,
		"dateReported":  r.DateReported,
	}
	if r.Description != "" {
		fields["description"] = r.Description
	}
	if r.Location != "" {
		fields["location"] = r.Location
	}
	if r.ContactEmail != "" {
		fields["contactEmail"] = r.ContactEmail
	}
	if r.PhotoURL != "" {
		fields["photoUrl"] = r.PhotoURL
	}
	return fields
}
