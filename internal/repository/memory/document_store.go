package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository"
)

// DocumentStore is an in-memory resource store. Unique fields are checked
// under the write lock, mirroring the unique indexes of the SQL schema.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[model.Resource]map[string]model.Document
	unique map[model.Resource][]string
}

// NewDocumentStore creates an empty DocumentStore enforcing the given
// per-kind unique fields.
func NewDocumentStore(unique map[model.Resource][]string) *DocumentStore {
	if unique == nil {
		unique = map[model.Resource][]string{}
	}
	return &DocumentStore{
		docs:   make(map[model.Resource]map[string]model.Document),
		unique: unique,
	}
}

func (s *DocumentStore) Insert(_ context.Context, kind model.Resource, fields map[string]interface{}) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.violatesUniqueLocked(kind, "", fields) {
		return nil, repository.ErrDuplicate
	}

	now := time.Now().UTC()
	doc := model.Document{
		ID:        uuid.NewString(),
		Fields:    cloneFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.docs[kind] == nil {
		s.docs[kind] = make(map[string]model.Document)
	}
	s.docs[kind][doc.ID] = doc
	return cloneDoc(doc), nil
}

func (s *DocumentStore) Find(_ context.Context, kind model.Resource, filter map[string]string) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Document{}
	for _, d := range s.docs[kind] {
		if matches(d, filter) {
			out = append(out, *cloneDoc(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *DocumentStore) FindByID(_ context.Context, kind model.Resource, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[kind][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDoc(d), nil
}

func (s *DocumentStore) FindByIDs(_ context.Context, kind model.Resource, ids []string) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Document{}
	for _, id := range ids {
		if d, ok := s.docs[kind][id]; ok {
			out = append(out, *cloneDoc(d))
		}
	}
	return out, nil
}

func (s *DocumentStore) Patch(_ context.Context, kind model.Resource, id string, fields map[string]interface{}) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[kind][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	merged := cloneFields(d.Fields)
	for k, v := range fields {
		merged[k] = v
	}
	if s.violatesUniqueLocked(kind, id, merged) {
		return nil, repository.ErrDuplicate
	}
	d.Fields = merged
	d.UpdatedAt = time.Now().UTC()
	s.docs[kind][id] = d
	return cloneDoc(d), nil
}

func (s *DocumentStore) Delete(_ context.Context, kind model.Resource, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[kind][id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.docs[kind], id)
	return nil
}

func (s *DocumentStore) Count(_ context.Context, kind model.Resource) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[kind]), nil
}

func (s *DocumentStore) Ping(context.Context) error {
	return nil
}

func (s *DocumentStore) violatesUniqueLocked(kind model.Resource, selfID string, fields map[string]interface{}) bool {
	for _, field := range s.unique[kind] {
		v, ok := fields[field]
		if !ok || v == nil {
			continue
		}
		for id, other := range s.docs[kind] {
			if id == selfID {
				continue
			}
			if ov, ok := other.Fields[field]; ok && ov != nil && textOf(ov) == textOf(v) {
				return true
			}
		}
	}
	return false
}

// matches compares each filter value against the text Postgres prints for
// data->>key: strings raw, numbers in plain decimal, bools as true/false and
// lists in jsonb's `["a", "b"]` layout.
func matches(d model.Document, filter map[string]string) bool {
	for k, want := range filter {
		v, ok := d.Fields[k]
		if !ok || v == nil || textOf(v) != want {
			return false
		}
	}
	return true
}

func textOf(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []string:
		items := make([]interface{}, len(x))
		for i, item := range x {
			items[i] = item
		}
		return listText(items)
	case []interface{}:
		return listText(x)
	default:
		return jsonText(x)
	}
}

func listText(items []interface{}) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			parts[i] = jsonText(s)
			continue
		}
		parts[i] = textOf(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func jsonText(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func cloneFields(f map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func cloneDoc(d model.Document) *model.Document {
	c := d
	c.Fields = cloneFields(d.Fields)
	return &c
}
