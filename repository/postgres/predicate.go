package postgres

import (
	"fmt"
	"strings"

	"github.com/offerdeck/backend/query"
)

// Column mappings from predicate fields to SQL. Offer queries alias the
// offers table as o and join users as u only when a predicate addresses the
// publisher's username.
var offerColumns = map[query.Field]string{
	query.OfferID:                "o.id",
	query.OfferPublisherID:       "o.publisher_id",
	query.OfferPublisherUsername: "u.username",
	query.OfferCancelled:         "o.cancelled",
	query.OfferEndTime:           "o.end_time",
}

var userColumns = map[query.Field]string{
	query.UserID:       "u.id",
	query.UserUsername: "u.username",
	query.UserEnabled:  "u.enabled",
}

// compilePredicate renders a predicate tree as a parameterized WHERE
// expression. Values are always bound, never interpolated.
func compilePredicate(p query.Predicate, columns map[query.Field]string, args *[]any) (string, error) {
	switch p.Op {
	case query.OpAnd:
		if len(p.Args) == 0 {
			return "TRUE", nil
		}
		parts := make([]string, 0, len(p.Args))
		for _, arg := range p.Args {
			part, err := compilePredicate(arg, columns, args)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, " AND ") + ")", nil

	case query.OpNot:
		if len(p.Args) != 1 {
			return "", fmt.Errorf("not predicate requires exactly one operand, got %d", len(p.Args))
		}
		inner, err := compilePredicate(p.Args[0], columns, args)
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil

	case query.OpEq, query.OpGt, query.OpLe:
		column, ok := columns[p.Field]
		if !ok {
			return "", fmt.Errorf("field %q not addressable here", p.Field)
		}
		*args = append(*args, p.Value)
		return fmt.Sprintf("(%s %s $%d)", column, sqlOperator(p.Op), len(*args)), nil

	default:
		return "", fmt.Errorf("unsupported predicate op %q", p.Op)
	}
}

func sqlOperator(op query.Op) string {
	switch op {
	case query.OpGt:
		return ">"
	case query.OpLe:
		return "<="
	default:
		return "="
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
