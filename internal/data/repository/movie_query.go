package repository

import (
	"fmt"
	"strings"
)

// LinkFilter is the tri-state availability filter over the watch link.
type LinkFilter int

const (
	LinkAny LinkFilter = iota
	LinkAvailable
	LinkUnavailable
)

// ParseLinkFilter maps a query-string value to the tri-state filter.
// The second return is false for unrecognized values.
func ParseLinkFilter(value string) (LinkFilter, bool) {
	switch value {
	case "":
		return LinkAny, true
	case "available":
		return LinkAvailable, true
	case "unavailable":
		return LinkUnavailable, true
	default:
		return LinkAny, false
	}
}

// MovieFilter describes one catalog listing predicate. Empty string
// fields mean "no constraint". The same filter drives both the page
// query and the count query so pagination metadata stays consistent.
type MovieFilter struct {
	Search string // case-insensitive substring over title OR description
	Status string
	Type   string
	Link   LinkFilter
}

// MovieSort describes the requested ordering. Unknown fields fall back
// to createdAt; direction defaults to desc.
type MovieSort struct {
	Field     string
	Direction string
}

// Sortable fields that compile to a plain single-column order.
// "date", "rating" and "chat" have dedicated multi-key rules below.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"type":      "type",
}

// whereClause compiles the filter into a WHERE fragment with positional
// args starting at $1. Returns an empty fragment for the empty filter.
func (f MovieFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}

	switch f.Link {
	case LinkAvailable:
		conds = append(conds, "(link IS NOT NULL AND link <> '')")
	case LinkUnavailable:
		conds = append(conds, "(link IS NULL OR link = '')")
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause compiles the sort request into an ORDER BY fragment.
//
//   - "date" orders by release_date with created_at breaking ties in the
//     same direction; missing release dates group at the small end, so
//     they lead ascending results and trail descending ones.
//   - "rating"/"chat" use a two-key null sort: the is-null flag first,
//     then the value, which pins null ratings to the end of the result
//     set regardless of direction.
//   - anything else is a whitelisted single-column sort.
//
// id is always the final key so identical inputs page deterministically.
func (s MovieSort) orderClause() string {
	dir := "DESC"
	if strings.EqualFold(s.Direction, "asc") {
		dir = "ASC"
	}

	switch s.Field {
	case "date":
		nulls := "NULLS LAST"
		if dir == "ASC" {
			nulls = "NULLS FIRST"
		}
		return fmt.Sprintf(" ORDER BY release_date %s %s, created_at %s, id ASC", dir, nulls, dir)
	case "rating":
		return fmt.Sprintf(" ORDER BY (rating IS NULL) ASC, rating %s, id ASC", dir)
	case "chat":
		return fmt.Sprintf(" ORDER BY (chat_rating IS NULL) ASC, chat_rating %s, id ASC", dir)
	default:
		col, ok := sortColumns[s.Field]
		if !ok {
			col = "created_at"
		}
		return fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
	}
}
