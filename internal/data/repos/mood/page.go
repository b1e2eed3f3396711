package mood

import (
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort orders a paged query by one of the sortable columns.
type Sort struct {
	Field string
	Desc  bool
}

type PageRequest struct {
	Page int
	Size int
	Sort []Sort
}

var sortableColumns = map[string]string{
	"id":         "id",
	"date":       "date",
	"mood":       "mood",
	"created_at": "created_at",
	"createdat":  "created_at",
}

// SortableField reports whether field can be used in a Sort.
func SortableField(field string) bool {
	_, ok := sortableColumns[strings.ToLower(strings.TrimSpace(field))]
	return ok
}

// Normalize clamps page and size and drops unknown sort fields.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	sorts := make([]Sort, 0, len(p.Sort))
	for _, s := range p.Sort {
		if col, ok := sortableColumns[strings.ToLower(strings.TrimSpace(s.Field))]; ok {
			sorts = append(sorts, Sort{Field: col, Desc: s.Desc})
		}
	}
	p.Sort = sorts
	return p
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

func (p PageRequest) orderClauses() []string {
	if len(p.Sort) == 0 {
		return []string{"date DESC", "id ASC"}
	}
	out := make([]string, 0, len(p.Sort))
	for _, s := range p.Sort {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		out = append(out, s.Field+" "+dir)
	}
	return out
}
