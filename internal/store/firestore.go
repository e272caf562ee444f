package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements DocumentStore on top of a Cloud Firestore client.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

var _ DocumentStore = (*Firestore)(nil)

func (s *Firestore) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// NewID allocates a document id without writing anything, so derived values
// (reference codes) can be computed before the document exists.
func (s *Firestore) NewID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

func (s *Firestore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Firestore) Query(collection string) Query {
	return firestoreQuery{q: s.client.Collection(collection).Query}
}

type firestoreQuery struct {
	q firestore.Query
}

func (f firestoreQuery) Where(field, op string, value any) Query {
	return firestoreQuery{q: f.q.Where(field, op, value)}
}

func (f firestoreQuery) OrderBy(field string, dir Direction) Query {
	d := firestore.Asc
	if dir == Desc {
		d = firestore.Desc
	}
	return firestoreQuery{q: f.q.OrderBy(field, d)}
}

func (f firestoreQuery) Offset(n int) Query {
	return firestoreQuery{q: f.q.Offset(n)}
}

func (f firestoreQuery) Limit(n int) Query {
	return firestoreQuery{q: f.q.Limit(n)}
}

func (f firestoreQuery) Count(ctx context.Context) (int64, error) {
	results, err := f.q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation: %w", err)
	}
	raw, ok := results["total"]
	if !ok {
		return 0, errors.New("count aggregation: missing result")
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count aggregation: unexpected result type %T", raw)
	}
	return value.GetIntegerValue(), nil
}

func (f firestoreQuery) Documents(ctx context.Context) ([]Document, error) {
	iter := f.q.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate documents: %w", err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
