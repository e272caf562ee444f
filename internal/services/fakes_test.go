package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campus-services/lostfound-backend/internal/store"
)

// fakeStore is an in-memory DocumentStore preserving insertion order, which
// the fake query uses as the stable tiebreak for equal sort keys.
type fakeStore struct {
	collections map[string][]store.Document
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string][]store.Document)}
}

func (f *fakeStore) add(collection, id string, data map[string]any) {
	f.collections[collection] = append(f.collections[collection], store.Document{ID: id, Data: data})
}

func (f *fakeStore) Get(_ context.Context, collection, id string) (*store.Document, error) {
	for _, doc := range f.collections[collection] {
		if doc.ID == id {
			d := doc
			return &d, nil
		}
	}
	return nil, store.ErrDocumentNotFound
}

func (f *fakeStore) NewID(string) string {
	f.nextID++
	return fmt.Sprintf("generated-%04d", f.nextID)
}

func (f *fakeStore) Set(_ context.Context, collection, id string, data map[string]any) error {
	for i, doc := range f.collections[collection] {
		if doc.ID == id {
			f.collections[collection][i].Data = data
			return nil
		}
	}
	f.add(collection, id, data)
	return nil
}

func (f *fakeStore) Query(collection string) store.Query {
	return fakeQuery{docs: f.collections[collection]}
}

type fieldFilter struct {
	field string
	value any
}

type fakeQuery struct {
	docs    []store.Document
	filters []fieldFilter
	orderBy string
	desc    bool
	offset  int
	limit   int
}

func (q fakeQuery) Where(field, op string, value any) store.Query {
	if op != "==" {
		panic("fakeQuery supports equality filters only")
	}
	filters := append(append([]fieldFilter{}, q.filters...), fieldFilter{field: field, value: value})
	q.filters = filters
	return q
}

func (q fakeQuery) OrderBy(field string, dir store.Direction) store.Query {
	q.orderBy = field
	q.desc = dir == store.Desc
	return q
}

func (q fakeQuery) Offset(n int) store.Query {
	q.offset = n
	return q
}

func (q fakeQuery) Limit(n int) store.Query {
	q.limit = n
	return q
}

func (q fakeQuery) Count(context.Context) (int64, error) {
	return int64(len(q.matches())), nil
}

func (q fakeQuery) Documents(context.Context) ([]store.Document, error) {
	docs := q.matches()

	if q.orderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := compareFieldValues(docs[i].Data[q.orderBy], docs[j].Data[q.orderBy])
			if q.desc {
				return !less && !equalFieldValues(docs[i].Data[q.orderBy], docs[j].Data[q.orderBy])
			}
			return less
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

func (q fakeQuery) matches() []store.Document {
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

func compareFieldValues(a, b any) bool {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Before(bt)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)) < 0
}

func equalFieldValues(a, b any) bool {
	return !compareFieldValues(a, b) && !compareFieldValues(b, a)
}

// fakeBlob signs URLs deterministically and can be flipped into a failing
// mode to exercise best-effort degradation.
type fakeBlob struct {
	bucket    string
	signErr   error
	uploadErr error
	uploads   map[string][]byte
	uploadCT  map[string]string
}

func newFakeBlob(bucket string) *fakeBlob {
	return &fakeBlob{
		bucket:   bucket,
		uploads:  make(map[string][]byte),
		uploadCT: make(map[string]string),
	}
}

func (f *fakeBlob) DefaultBucket() string { return f.bucket }

func (f *fakeBlob) SignedURL(bucket, object string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=test", nil
}

func (f *fakeBlob) Upload(_ context.Context, object string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[object] = data
	f.uploadCT[object] = contentType
	return nil
}

var errSigningDown = errors.New("signing unavailable")
