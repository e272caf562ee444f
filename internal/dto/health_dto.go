package dto

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

type FirestoreHealthResponse struct {
	OK        bool           `json:"ok"`
	Firestore bool           `json:"firestore"`
	Data      map[string]any `json:"data"`
}
