package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// patch collects the populated fields of an update body as column changes.
type patch map[string]any

func (p patch) str(column string, value *string) patch {
	if value != nil {
		p[column] = strings.TrimSpace(*value)
	}
	return p
}

func (p patch) i64(column string, value *int64) patch {
	if value != nil {
		p[column] = *value
	}
	return p
}

func (p patch) flag(column string, value *bool) patch {
	if value != nil {
		p[column] = *value
	}
	return p
}

func (p patch) dec(column string, value *decimal.Decimal) patch {
	if value != nil {
		p[column] = *value
	}
	return p
}

func (p patch) at(column string, value *time.Time) patch {
	if value != nil {
		p[column] = value.UTC()
	}
	return p
}

// val stores any non-nil pointer value, used for enum-typed fields.
func val[T any](p patch, column string, value *T) patch {
	if value != nil {
		p[column] = *value
	}
	return p
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
