package admin

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-accounts"
)

// ListOptions carries the operator's list-view request: a substring search,
// exact-match filters, ordering, and a page window.
type ListOptions struct {
	Search  string
	Filters map[string]string
	OrderBy string
	Limit   int
	Offset  int
}

const defaultPageSize = 50

// Lister runs list queries for a declared resource.
type Lister struct {
	db       *bun.DB
	resource Resource
}

// NewLister builds a Lister bound to one resource declaration.
func NewLister(db *bun.DB, resource Resource) *Lister {
	return &Lister{db: db, resource: resource}
}

// Resource returns the projection this lister serves.
func (l *Lister) Resource() Resource {
	return l.resource
}

// ListAccounts applies search, filters, and ordering per the resource
// declaration. Search is a case-insensitive substring match across the
// searchable fields; filters match exactly and combine with AND.
func (l *Lister) ListAccounts(ctx context.Context, opts ListOptions) ([]*accounts.Account, int, error) {
	if err := l.validate(opts); err != nil {
		return nil, 0, err
	}

	var records []*accounts.Account
	q := l.db.NewSelect().Model(&records)

	if opts.Search != "" {
		needle := "%" + strings.ToLower(opts.Search) + "%"
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			for _, field := range l.resource.SearchFields() {
				sq = sq.WhereOr(fmt.Sprintf("LOWER(?TableAlias.%s) LIKE ?", field), needle)
			}
			return sq
		})
	}

	for field, value := range opts.Filters {
		q = q.Where(fmt.Sprintf("?TableAlias.%s = ?", field), filterValue(value))
	}

	ordering, err := l.orderExprs(opts.OrderBy)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range ordering {
		q = q.OrderExpr(o)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	total, err := q.Limit(limit).Offset(opts.Offset).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "account list query failed")
	}

	return records, total, nil
}

func (l *Lister) validate(opts ListOptions) error {
	for field := range opts.Filters {
		if !contains(l.resource.FilterFields(), field) {
			return goerrors.New(
				fmt.Sprintf("field %q is not filterable", field),
				goerrors.CategoryValidation,
			).WithTextCode("INVALID_FILTER").WithCode(goerrors.CodeBadRequest)
		}
	}

	return nil
}

// orderExprs parses the requested ordering into a validated field plus
// direction. Only declared list columns and ASC/DESC pass; the expression
// handed to the query is rebuilt from those parts, never the raw request
// string.
func (l *Lister) orderExprs(orderBy string) ([]string, error) {
	parts := strings.Fields(orderBy)
	if len(parts) == 0 {
		return l.resource.Ordering, nil
	}

	if len(parts) > 2 || !contains(l.resource.ListDisplay(), parts[0]) {
		return nil, goerrors.New(
			fmt.Sprintf("cannot order by %q", orderBy),
			goerrors.CategoryValidation,
		).WithTextCode("INVALID_ORDERING").WithCode(goerrors.CodeBadRequest)
	}

	direction := "ASC"
	if len(parts) == 2 {
		switch strings.ToUpper(parts[1]) {
		case "ASC", "DESC":
			direction = strings.ToUpper(parts[1])
		default:
			return nil, goerrors.New(
				fmt.Sprintf("cannot order by %q", orderBy),
				goerrors.CategoryValidation,
			).WithTextCode("INVALID_ORDERING").WithCode(goerrors.CodeBadRequest)
		}
	}

	return []string{parts[0] + " " + direction}, nil
}

// filterValue maps the textual true/false operators sent for the boolean
// flag filters; everything else passes through as-is.
func filterValue(v string) any {
	switch strings.ToLower(v) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return v
	}
}

func contains(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
