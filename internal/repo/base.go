// Package repo holds the connection handle and query scopes shared by the
// table repositories.
package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Base carries the connection a repository issues statements on. The zero
// transaction case and the bound transaction case look the same to callers.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds ctx to the connection. A nil ctx returns the connection untouched.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

func (b Base) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return b.DB(ctx).Transaction(fn)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lowercases term and escapes LIKE wildcards so it matches literally.
func ContainsPattern(term string) string {
	return "%" + strings.ToLower(likeEscaper.Replace(strings.TrimSpace(term))) + "%"
}

// Search ORs a case-insensitive substring match of term over columns.
// A blank term or no columns leaves the query as is.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if strings.TrimSpace(term) == "" || len(columns) == 0 {
			return tx
		}
		pattern := ContainsPattern(term)
		ors := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			ors[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
			args[i] = pattern
		}
		return tx.Where("("+strings.Join(ors, " OR ")+")", args...)
	}
}

// Equals adds one equality predicate per filter, in column order so the SQL is stable.
func Equals(filters map[string]any) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		cols := make([]string, 0, len(filters))
		for col := range filters {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			tx = tx.Where(clause.Eq{Column: clause.Column{Name: col}, Value: filters[col]})
		}
		return tx
	}
}

// Status restricts to rows whose soft-delete flag equals *status. Nil means any.
func Status(status *bool) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if status == nil {
			return tx
		}
		return tx.Where("status = ?", *status)
	}
}
