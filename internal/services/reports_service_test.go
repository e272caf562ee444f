package services

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/models"
)

var referenceCodePattern = regexp.MustCompile(`^(LST|FND)-\d{8}-[A-Z0-9]{1,8}$`)

func pngDataURL(t *testing.T) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a real png"))
}

func TestCreateLostReportPersistsDocument(t *testing.T) {
	docs := newFakeStore()
	svc := NewReportsService(docs, newFakeBlob("campus-photos"))

	report, err := svc.CreateLostReport(context.Background(), &dto.CreateLostReportRequest{
		Title:            "Blue Water Bottle",
		Description:      "Dented near the cap",
		LastSeenLocation: "Gym locker room",
		LastSeenAt:       "2026-01-14T18:00:00Z",
		ContactEmail:     "student@campus.edu",
	})
	require.NoError(t, err)

	assert.Equal(t, models.KindLost, report.Kind)
	assert.Equal(t, models.StatusReported, report.Status)
	assert.Equal(t, "2026-01-14T18:00:00Z", report.DateReported)
	assert.Regexp(t, referenceCodePattern, report.ReferenceCode)
	assert.True(t, strings.HasPrefix(report.ReferenceCode, "LST-"))

	stored, err := docs.Get(context.Background(), reportsCollection, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Water Bottle", stored.Data["title"])
	assert.Equal(t, "REPORTED", stored.Data["status"])
	assert.Equal(t, "Gym locker room", stored.Data["location"])
	assert.Equal(t, "student@campus.edu", stored.Data["contactEmail"])
	_, hasPhoto := stored.Data["photoUrl"]
	assert.False(t, hasPhoto, "photo omitted entirely when none was sent")
}

func TestCreateLostReportDefaultsDateToNow(t *testing.T) {
	svc := NewReportsService(newFakeStore(), newFakeBlob("campus-photos"))

	before := time.Now().UTC().Add(-time.Second)
	report, err := svc.CreateLostReport(context.Background(), &dto.CreateLostReportRequest{Title: "Keys"})
	require.NoError(t, err)

	reported, err := time.Parse(time.RFC3339, report.DateReported)
	require.NoError(t, err)
	assert.False(t, reported.Before(before))
	assert.False(t, reported.After(time.Now().UTC().Add(time.Second)))
}

func TestCreateFoundReportUploadsPhoto(t *testing.T) {
	docs := newFakeStore()
	blobs := newFakeBlob("campus-photos")
	svc := NewReportsService(docs, blobs)

	report, err := svc.CreateFoundReport(context.Background(), &dto.CreateFoundReportRequest{
		Title:         "Silver Laptop",
		FoundLocation: "Lecture hall B",
		PhotoDataURL:  pngDataURL(t),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.ReferenceCode, "FND-"))
	require.True(t, strings.HasPrefix(report.PhotoURL, "gs://campus-photos/reports/found/"), report.PhotoURL)
	assert.True(t, strings.HasSuffix(report.PhotoURL, ".png"))

	object := strings.TrimPrefix(report.PhotoURL, "gs://campus-photos/")
	assert.Equal(t, []byte("not a real png"), blobs.uploads[object])
	assert.Equal(t, "image/png", blobs.uploadCT[object])

	stored, err := docs.Get(context.Background(), reportsCollection, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.PhotoURL, stored.Data["photoUrl"])
}

func TestCreateFoundReportRejectsBadPhoto(t *testing.T) {
	svc := NewReportsService(newFakeStore(), newFakeBlob("campus-photos"))

	cases := map[string]string{
		"not a data url":    "https://cdn.example.com/a.png",
		"non-image type":    "data:text/plain;base64,aGVsbG8=",
		"bad base64":        "data:image/png;base64,!!!!",
		"empty payload":     "data:image/png;base64,",
		"missing encoding":  "data:image/png,rawbytes",
	}

	for name, photo := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateFoundReport(context.Background(), &dto.CreateFoundReportRequest{
				Title:         "X",
				FoundLocation: "Y",
				PhotoDataURL:  photo,
			})
			assert.ErrorIs(t, err, ErrInvalidPhotoDataURL)
		})
	}
}

func TestCreateLostReportWithPhotoStoresUnderLostPrefix(t *testing.T) {
	blobs := newFakeBlob("campus-photos")
	svc := NewReportsService(newFakeStore(), blobs)

	report, err := svc.CreateLostReport(context.Background(), &dto.CreateLostReportRequest{
		Title:        "Scarf",
		PhotoDataURL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes")),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.PhotoURL, "gs://campus-photos/reports/lost/"), report.PhotoURL)
	assert.True(t, strings.HasSuffix(report.PhotoURL, ".jpeg"))
}

func TestReferenceCodeDerivation(t *testing.T) {
	createdAt := time.Date(2026, 1, 15, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))

	// 2026-01-15 23:30 UTC-2 is 2026-01-16 in UTC; the date part follows UTC.
	code := referenceCode("FND", "aBc-12_3456789xyz", createdAt)
	assert.Equal(t, "FND-20260116-56789XYZ", code)

	assert.Equal(t, "LST-20260116-AB12", referenceCode("LST", "ab-12", createdAt))
}
