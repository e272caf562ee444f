package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/campus-services/lostfound-backend/internal/store"
)

type memStore struct {
	collections map[string][]store.Document
	nextID      int
}

func newMemStore() *memStore {
	return &memStore{collections: make(map[string][]store.Document)}
}

func (m *memStore) add(collection, id string, data map[string]any) {
	m.collections[collection] = append(m.collections[collection], store.Document{ID: id, Data: data})
}

func (m *memStore) Get(_ context.Context, collection, id string) (*store.Document, error) {
	for _, doc := range m.collections[collection] {
		if doc.ID == id {
			d := doc
			return &d, nil
		}
	}
	return nil, store.ErrDocumentNotFound
}

func (m *memStore) NewID(string) string {
	m.nextID++
	return fmt.Sprintf("mem-%04d", m.nextID)
}

func (m *memStore) Set(_ context.Context, collection, id string, data map[string]any) error {
	m.add(collection, id, data)
	return nil
}

func (m *memStore) Query(collection string) store.Query {
	return memQuery{docs: m.collections[collection]}
}

type memFilter struct {
	field string
	value any
}

type memQuery struct {
	docs    []store.Document
	filters []memFilter
	orderBy string
	desc    bool
	offset  int
	limit   int
}

func (q memQuery) Where(field, _ string, value any) store.Query {
	q.filters = append(append([]memFilter{}, q.filters...), memFilter{field, value})
	return q
}

func (q memQuery) OrderBy(field string, dir store.Direction) store.Query {
	q.orderBy = field
	q.desc = dir == store.Desc
	return q
}

func (q memQuery) Offset(n int) store.Query { q.offset = n; return q }
func (q memQuery) Limit(n int) store.Query  { q.limit = n; return q }

func (q memQuery) Count(context.Context) (int64, error) {
	return int64(len(q.matches())), nil
}

func (q memQuery) Documents(context.Context) ([]store.Document, error) {
	docs := q.matches()
	if q.orderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a := fmt.Sprint(docs[i].Data[q.orderBy])
			b := fmt.Sprint(docs[j].Data[q.orderBy])
			if q.desc {
				return a > b
			}
			return a < b
		})
	}
	if q.offset > len(docs) {
		return nil, nil
	}
	docs = docs[q.offset:]
	if q.limit > 0 && q.limit < len(docs) {
		docs = docs[:q.limit]
	}
	return docs, nil
}

func (q memQuery) matches() []store.Document {
	var out []store.Document
	for _, doc := range q.docs {
		ok := true
		for _, f := range q.filters {
			if doc.Data[f.field] != f.value {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out
}

type memBlob struct {
	bucket  string
	uploads map[string][]byte
}

func newMemBlob(bucket string) *memBlob {
	return &memBlob{bucket: bucket, uploads: make(map[string][]byte)}
}

func (b *memBlob) DefaultBucket() string { return b.bucket }

func (b *memBlob) SignedURL(bucket, object string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + bucket + "/" + object, nil
}

func (b *memBlob) Upload(_ context.Context, object string, data []byte, _ string) error {
	b.uploads[object] = data
	return nil
}
