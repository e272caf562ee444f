package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/models"
	"github.com/campus-services/lostfound-backend/internal/store"
)

const (
	itemsCollection   = "items"
	reportsCollection = "reports"
)

// ItemsService serves the public browsing surface: the paginated listing of
// validated found items and single-item detail resolution.
type ItemsService struct {
	store  store.DocumentStore
	images *ImageResolver
}

func NewItemsService(documents store.DocumentStore, images *ImageResolver) *ItemsService {
	return &ItemsService{store: documents, images: images}
}

// ListValidatedItems returns one page of publicly listable items. The only
// predicate is kind==FOUND and status==VALIDATED; the total comes from a
// server-side count over the same predicate, so documents that later fail
// normalization still count toward navigation.
func (s *ItemsService) ListValidatedItems(ctx context.Context, page, limit int) (*dto.ItemListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	query := s.store.Query(reportsCollection).
		Where("kind", "==", string(models.KindFound)).
		Where("status", "==", string(models.StatusValidated))

	total, err := query.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count validated items: %w", err)
	}

	docs, err := query.
		OrderBy("dateReported", store.Desc).
		Offset((page-1)*limit).
		Limit(limit).
		Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list validated items: %w", err)
	}

	items := make([]models.ItemSummary, 0, len(docs))
	for _, doc := range docs {
		summary, err := s.mapItemSummary(doc.ID, doc.Data)
		if err != nil {
			// A broken document must not break browsing. It stays in the
			// total so page math is independent of normalization success.
			slog.Warn("dropping unrenderable item from listing", "id", doc.ID)
			continue
		}
		items = append(items, *summary)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return &dto.ItemListResponse{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Items:       items,
	}, nil
}

// resolveStep attempts one storage location. found=false means the step does
// not apply and the next one should run; any error is terminal.
type resolveStep func(ctx context.Context, id string) (*store.Document, bool, error)

// GetItemByID resolves a public identifier across the storage locations a
// document may live in: the items collection by id, the items collection by
// originating report id, and the legacy reports collection by id. The first
// matching document wins and is normalized; a malformed winner surfaces
// ErrInvalidItemData rather than falling through to later steps.
func (s *ItemsService) GetItemByID(ctx context.Context, id string) (*models.ItemDetails, error) {
	steps := []resolveStep{
		s.itemByID,
		s.itemByReportID,
		s.legacyReportByID,
	}

	for _, step := range steps {
		doc, found, err := step(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		return s.mapItemDetails(doc.ID, doc.Data)
	}
	return nil, ErrItemNotFound
}

func (s *ItemsService) itemByID(ctx context.Context, id string) (*store.Document, bool, error) {
	doc, err := s.store.Get(ctx, itemsCollection, id)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (s *ItemsService) itemByReportID(ctx context.Context, id string) (*store.Document, bool, error) {
	docs, err := s.store.Query(itemsCollection).
		Where("reportId", "==", id).
		Limit(1).
		Documents(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("query items by report id: %w", err)
	}
	if len(docs) == 0 {
		return nil, false, nil
	}
	return &docs[0], true, nil
}

// legacyReportByID covers data recorded before validated reports were copied
// into a separate items collection, so old links keep working.
func (s *ItemsService) legacyReportByID(ctx context.Context, id string) (*store.Document, bool, error) {
	doc, err := s.store.Get(ctx, reportsCollection, id)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// mapItemDetails validates a raw document and enriches it with the full set
// of resolved image URLs.
func (s *ItemsService) mapItemDetails(id string, data map[string]any) (*models.ItemDetails, error) {
	details, err := normalizeItem(id, data)
	if err != nil {
		return nil, err
	}
	details.ImageURLs = s.images.ResolveAll(imageRefs(data))
	return details, nil
}

// mapItemSummary validates a raw document into the list projection, with a
// single thumbnail resolved from the first usable image reference.
func (s *ItemsService) mapItemSummary(id string, data map[string]any) (*models.ItemSummary, error) {
	details, err := normalizeItem(id, data)
	if err != nil {
		return nil, err
	}

	summary := &models.ItemSummary{
		ID:            details.ID,
		Title:         details.Title,
		Status:        details.Status,
		ReferenceCode: details.ReferenceCode,
		Location:      details.Location,
		DateReported:  details.DateReported,
	}
	if refs := imageRefs(data); len(refs) > 0 {
		summary.ThumbnailURL = s.images.Resolve(refs[0])
	}
	return summary, nil
}
