package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository"
	"github.com/stemsi/academy-backoffice/internal/resource"
)

// ResourceService is the generic CRUD core. Behaviour differences between
// resources come only from their schema.
type ResourceService struct {
	docs     DocumentStore
	registry *resource.Registry
	log      zerolog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(docs DocumentStore, registry *resource.Registry, log zerolog.Logger) *ResourceService {
	return &ResourceService{
		docs:     docs,
		registry: registry,
		log:      log.With().Str("component", "resource_service").Logger(),
	}
}

// Create validates and stores a new document.
func (s *ResourceService) Create(ctx context.Context, schema *resource.Schema, callerID string, payload map[string]interface{}) (map[string]interface{}, error) {
	if schema.OwnerField != "" && callerID != "" {
		if v, ok := payload[schema.OwnerField]; !ok || v == nil || v == "" {
			withOwner := make(map[string]interface{}, len(payload)+1)
			for k, v := range payload {
				withOwner[k] = v
			}
			withOwner[schema.OwnerField] = callerID
			payload = withOwner
		}
	}

	fields, err := schema.ValidateCreate(payload)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Insert(ctx, schema.Name, fields)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return s.expandOne(ctx, schema, *doc)
}

// List returns documents matching the raw equality filter.
func (s *ResourceService) List(ctx context.Context, schema *resource.Schema, filter map[string]string) ([]map[string]interface{}, error) {
	docs, err := s.docs.Find(ctx, schema.Name, filter)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, schema, docs)
}

// Get returns one document.
func (s *ResourceService) Get(ctx context.Context, schema *resource.Schema, id string) (map[string]interface{}, error) {
	doc, err := s.docs.FindByID(ctx, schema.Name, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return s.expandOne(ctx, schema, *doc)
}

// Update merges the supplied fields into an existing document.
func (s *ResourceService) Update(ctx context.Context, schema *resource.Schema, id string, payload map[string]interface{}) (map[string]interface{}, error) {
	fields, err := schema.ValidatePatch(payload)
	if err != nil {
		return nil, err
	}

	var doc *model.Document
	if len(fields) == 0 {
		doc, err = s.docs.FindByID(ctx, schema.Name, id)
	} else {
		doc, err = s.docs.Patch(ctx, schema.Name, id, fields)
	}
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return s.expandOne(ctx, schema, *doc)
}

// Delete removes a document.
func (s *ResourceService) Delete(ctx context.Context, schema *resource.Schema, id string) error {
	if err := s.docs.Delete(ctx, schema.Name, id); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

// Summary counts documents for every registered resource.
func (s *ResourceService) Summary(ctx context.Context) (map[model.Resource]int, error) {
	out := make(map[model.Resource]int, len(s.registry.All()))
	for _, schema := range s.registry.All() {
		n, err := s.docs.Count(ctx, schema.Name)
		if err != nil {
			return nil, err
		}
		out[schema.Name] = n
	}
	return out, nil
}

// Ping checks the document store.
func (s *ResourceService) Ping(ctx context.Context) error {
	return s.docs.Ping(ctx)
}

func (s *ResourceService) expandOne(ctx context.Context, schema *resource.Schema, doc model.Document) (map[string]interface{}, error) {
	out, err := s.expand(ctx, schema, []model.Document{doc})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// expand flattens documents and replaces each declared reference with a
// projection of the referenced document, or nil if it no longer exists.
func (s *ResourceService) expand(ctx context.Context, schema *resource.Schema, docs []model.Document) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, len(docs))
	for i, d := range docs {
		out[i] = d.Flatten()
	}

	for _, rule := range schema.Expand {
		ids := collectRefs(out, rule.Field)
		if len(ids) == 0 {
			continue
		}

		refs, err := s.docs.FindByIDs(ctx, rule.Resource, ids)
		if err != nil {
			return nil, err
		}
		projections := make(map[string]map[string]interface{}, len(refs))
		for _, ref := range refs {
			p := map[string]interface{}{model.FieldID: ref.ID}
			for _, f := range rule.Project {
				p[f] = ref.Fields[f]
			}
			projections[ref.ID] = p
		}

		for _, doc := range out {
			id, ok := doc[rule.Field].(string)
			if !ok {
				continue
			}
			if p, found := projections[id]; found {
				doc[rule.Field] = p
			} else {
				doc[rule.Field] = nil
			}
		}
	}
	return out, nil
}

func collectRefs(docs []map[string]interface{}, field string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, d := range docs {
		if id, ok := d[field].(string); ok && id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrDocumentNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDocumentConflict
	}
	return err
}
