package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/drashti611/gowear-frontend/internal/backend"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

// Routes are the backend paths of one entity. Paths containing ":id" have it
// substituted with the escaped document id. An empty Get is served from List.
type Routes struct {
	List   string
	Get    string
	Create string
	Update string
	Delete string
}

// Manager is the CRUD surface the admin console uses for every entity kind.
// Mutations re-fetch and return the full list so callers always render the
// backend's view.
type Manager[T Entity] struct {
	client *backend.Client
	kind   string
	plural string
	routes Routes
}

func NewManager[T Entity](c *backend.Client, kind, plural string, r Routes) *Manager[T] {
	return &Manager[T]{client: c, kind: kind, plural: plural, routes: r}
}

func (m *Manager[T]) Kind() string { return m.kind }

func (m *Manager[T]) List(ctx context.Context) ([]T, error) {
	return m.listAt(ctx, m.routes.List)
}

func (m *Manager[T]) listAt(ctx context.Context, path string) ([]T, error) {
	var out []T
	err := m.client.Do(ctx, backend.Request{
		Op:      m.kind + ".list",
		Method:  http.MethodGet,
		Path:    path,
		Out:     &out,
		FailMsg: "Error fetching " + m.plural,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (m *Manager[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if m.routes.Get == "" {
		items, err := m.List(ctx)
		if err != nil {
			return zero, err
		}
		for _, it := range items {
			if it.EntityID() == id {
				return it, nil
			}
		}
		return zero, apperr.NotFoundErr(capitalize(m.kind) + " not found")
	}

	var out T
	err := m.client.Do(ctx, backend.Request{
		Op:      m.kind + ".get",
		Method:  http.MethodGet,
		Path:    withID(m.routes.Get, id),
		Out:     &out,
		FailMsg: "Error fetching " + m.kind,
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

func (m *Manager[T]) Create(ctx context.Context, token string, body any) ([]T, error) {
	if err := m.mutate(ctx, "create", http.MethodPost, m.routes.Create, token, body, "Error saving "+m.kind); err != nil {
		return nil, err
	}
	return m.List(ctx)
}

func (m *Manager[T]) Update(ctx context.Context, token, id string, body any) ([]T, error) {
	if err := m.mutate(ctx, "update", http.MethodPut, withID(m.routes.Update, id), token, body, "Error saving "+m.kind); err != nil {
		return nil, err
	}
	return m.List(ctx)
}

func (m *Manager[T]) Delete(ctx context.Context, token, id string) ([]T, error) {
	if err := m.mutate(ctx, "delete", http.MethodDelete, withID(m.routes.Delete, id), token, nil, "Error deleting "+m.kind); err != nil {
		return nil, err
	}
	return m.List(ctx)
}

func (m *Manager[T]) mutate(ctx context.Context, op, method, path, token string, body any, failMsg string) error {
	if path == "" {
		return fmt.Errorf("catalog: %s %s: no route", m.kind, op)
	}
	return m.client.Do(ctx, backend.Request{
		Op:      m.kind + "." + op,
		Method:  method,
		Path:    path,
		Token:   token,
		Body:    body,
		FailMsg: failMsg,
	})
}

func withID(route, id string) string {
	return strings.ReplaceAll(route, ":id", url.PathEscape(id))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
