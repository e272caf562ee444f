package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/models"
	"github.com/campus-services/lostfound-backend/internal/store"
)

var ErrInvalidPhotoDataURL = errors.New("invalid photo data URL")

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,(.+)$`)

// ReportsService handles public report submission: persisting the report
// document and uploading the attached photo to private blob storage.
type ReportsService struct {
	store store.DocumentStore
	blobs store.BlobStore
}

func NewReportsService(documents store.DocumentStore, blobs store.BlobStore) *ReportsService {
	return &ReportsService{store: documents, blobs: blobs}
}

func (s *ReportsService) CreateLostReport(ctx context.Context, req *dto.CreateLostReportRequest) (*models.Report, error) {
	var photoURL string
	if req.PhotoDataURL != "" {
		url, err := s.uploadPhoto(ctx, models.KindLost, req.PhotoDataURL)
		if err != nil {
			return nil, err
		}
		photoURL = url
	}

	createdAt := time.Now().UTC()
	id := s.store.NewID(reportsCollection)

	dateReported := req.LastSeenAt
	if dateReported == "" {
		dateReported = createdAt.Format(time.RFC3339)
	}

	report := &models.Report{
		ID:            id,
		Kind:          models.KindLost,
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.StatusReported,
		ReferenceCode: referenceCode("LST", id, createdAt),
		Location:      req.LastSeenLocation,
		DateReported:  dateReported,
		ContactEmail:  req.ContactEmail,
		PhotoURL:      photoURL,
	}

	if err := s.store.Set(ctx, reportsCollection, id, report.Fields()); err != nil {
		return nil, fmt.Errorf("create lost report: %w", err)
	}
	return report, nil
}

func (s *ReportsService) CreateFoundReport(ctx context.Context, req *dto.CreateFoundReportRequest) (*models.Report, error) {
	photoURL, err := s.uploadPhoto(ctx, models.KindFound, req.PhotoDataURL)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	id := s.store.NewID(reportsCollection)

	dateReported := req.FoundAt
	if dateReported == "" {
		dateReported = createdAt.Format(time.RFC3339)
	}

	report := &models.Report{
		ID:            id,
		Kind:          models.KindFound,
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.StatusReported,
		ReferenceCode: referenceCode("FND", id, createdAt),
		Location:      req.FoundLocation,
		DateReported:  dateReported,
		ContactEmail:  req.ContactEmail,
		PhotoURL:      photoURL,
	}

	if err := s.store.Set(ctx, reportsCollection, id, report.Fields()); err != nil {
		return nil, fmt.Errorf("create found report: %w", err)
	}
	return report, nil
}

// uploadPhoto decodes an image data URL and stores it privately under a
// per-kind prefix. The stored reference is the gs:// locator the image
// resolver later exchanges for a signed URL.
func (s *ReportsService) uploadPhoto(ctx context.Context, kind models.ReportKind, photoDataURL string) (string, error) {
	match := dataURLPattern.FindStringSubmatch(photoDataURL)
	if match == nil {
		return "", ErrInvalidPhotoDataURL
	}
	contentType := match[1]

	payload, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil || len(payload) == 0 {
		return "", ErrInvalidPhotoDataURL
	}

	ext := "jpg"
	if i := strings.Index(contentType, "/"); i >= 0 && i < len(contentType)-1 {
		ext = contentType[i+1:]
	}

	folder := "lost"
	if kind == models.KindFound {
		folder = "found"
	}
	object := fmt.Sprintf("reports/%s/%d-%s.%s", folder, time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := s.blobs.Upload(ctx, object, payload, contentType); err != nil {
		return "", fmt.Errorf("upload report photo: %w", err)
	}
	return "gs://" + s.blobs.DefaultBucket() + "/" + object, nil
}

// referenceCode derives the human-shareable code from the allocated document
// id and the creation date: {PREFIX}-{YYYYMMDD}-{8-char-suffix}. Never
// regenerated once stored.
func referenceCode(prefix, docID string, createdAt time.Time) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			return r
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		}
		return -1
	}, docID)
	if len(cleaned) > 8 {
		cleaned = cleaned[len(cleaned)-8:]
	}
	return prefix + "-" + createdAt.UTC().Format("20060102") + "-" + cleaned
}
