package datastore

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"lace-store/internal/repository"
)

// resource is one collection of the hosted store, addressed as path and path/{id}
type resource[T any, PT repository.EntityPtr[T]] struct {
	client *Client
	path   string
}

func newResource[T any, PT repository.EntityPtr[T]](client *Client, path string) *resource[T, PT] {
	return &resource[T, PT]{client: client, path: path}
}

func (r *resource[T, PT]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *resource[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.query(ctx, nil)
}

// query lists the collection filtered by the store. The store reports an
// empty result as 404, which maps to an empty list here.
func (r *resource[T, PT]) query(ctx context.Context, params url.Values) ([]T, error) {
	var items []T
	err := r.client.do(ctx, http.MethodGet, r.path, params, nil, &items)
	if errors.Is(err, repository.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// match lists with params and keeps only the items the predicate accepts,
// since the store matches query parameters as substrings.
func (r *resource[T, PT]) match(ctx context.Context, params url.Values, keep func(*T) bool) ([]T, error) {
	items, err := r.query(ctx, params)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func (r *resource[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	entity := new(T)
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Create posts the entity and reads back the stored copy, including the assigned ID
func (r *resource[T, PT]) Create(ctx context.Context, entity *T) error {
	return r.client.do(ctx, http.MethodPost, r.path, nil, entity, entity)
}

// Update patches the stored record with the full entity, so every field it carries is overwritten
func (r *resource[T, PT]) Update(ctx context.Context, entity *T) error {
	return r.client.do(ctx, http.MethodPatch, r.itemPath(PT(entity).GetID()), nil, entity, entity)
}

func (r *resource[T, PT]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}
