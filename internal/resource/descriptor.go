package resource

import (
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
)

// DeletePolicy selects what DELETE does to a row.
type DeletePolicy int

const (
	// SoftDelete flips status to false and keeps the row readable by id.
	SoftDelete DeletePolicy = iota
	// HardDelete removes the row.
	HardDelete
)

func (p DeletePolicy) String() string {
	if p == HardDelete {
		return "hard"
	}
	return "soft"
}

// Descriptor describes how a table is listed, filtered, sorted and deleted.
type Descriptor struct {
	Name          string
	IDColumn      string
	SearchColumns []string
	// Filters maps query parameter names to equality-filtered columns.
	Filters      map[string]string
	SortColumns  []string
	DefaultSort  string
	DeletePolicy DeletePolicy
	// OwnerColumn scopes getByAuth listings. Defaults to created_by.
	OwnerColumn string
	// HideInactive makes lookups by id treat soft-deleted rows as missing.
	HideInactive bool
	// DefaultActive lists only status=true rows unless the caller passes status.
	DefaultActive bool
}

// NotFoundMessage is the 404 message for this entity.
func (d Descriptor) NotFoundMessage() string {
	return d.Name + " not found"
}

func (d Descriptor) ownerColumn() string {
	if d.OwnerColumn != "" {
		return d.OwnerColumn
	}
	return "created_by"
}

// SortColumn resolves a requested sort key against the allow-list.
func (d Descriptor) SortColumn(key string) string {
	key = strings.TrimSpace(key)
	if key != "" {
		if key == d.IDColumn || key == "created_at" || key == "updated_at" {
			return key
		}
		for _, col := range d.SortColumns {
			if col == key {
				return col
			}
		}
	}
	if d.DefaultSort != "" {
		return d.DefaultSort
	}
	return "created_at"
}

// ListQuery carries parsed getAll parameters.
type ListQuery struct {
	pagination.Params
	Search string
	Status *bool
	// Filters holds column → value equality constraints.
	Filters   map[string]any
	SortBy    string
	SortOrder pagination.SortOrder
}

// Where adds an equality constraint on column.
func (q ListQuery) Where(column string, value any) ListQuery {
	filters := make(map[string]any, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[column] = value
	q.Filters = filters
	return q
}

// ActiveOnly restricts the listing to status=true rows.
func (q ListQuery) ActiveOnly() ListQuery {
	active := true
	q.Status = &active
	return q
}

// Page is one page of results plus its pagination block.
type Page[T any] struct {
	Items []T
	Meta  pagination.Meta
}
