package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/offerdeck/backend/query"
)

func TestCompilePredicate(t *testing.T) {
	tests := []struct {
		name     string
		p        query.Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			"eq",
			query.OfferIDEquals("o-1"),
			"(o.id = $1)",
			[]any{"o-1"},
		},
		{
			"le",
			query.OfferIsExpired(42),
			"(o.end_time <= $1)",
			[]any{int64(42)},
		},
		{
			"not",
			query.Not(query.OfferIsCancelled()),
			"NOT (o.cancelled = $1)",
			[]any{true},
		},
		{
			"open",
			query.OfferIsOpen(42),
			"(NOT (o.cancelled = $1) AND NOT (o.end_time <= $2))",
			[]any{true, int64(42)},
		},
		{
			"open by publisher username",
			query.And(query.OfferIsOpen(42), query.OfferPublisherUsernameEquals("alice")),
			"((NOT (o.cancelled = $1) AND NOT (o.end_time <= $2)) AND (u.username = $3))",
			[]any{true, int64(42), "alice"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var args []any
			sql, err := compilePredicate(tc.p, offerColumns, &args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sql != tc.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tc.wantSQL)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Errorf("args = %v, want %v", args, tc.wantArgs)
			}
		})
	}
}

func TestCompilePredicateRejectsForeignField(t *testing.T) {
	var args []any
	if _, err := compilePredicate(query.UserIsEnabled(), offerColumns, &args); err == nil {
		t.Fatal("expected error for a user field in an offer query")
	}
}

func TestBuildOfferQueryJoin(t *testing.T) {
	sql, _, err := buildOfferQuery("SELECT COUNT(*)", query.OfferIsOpen(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sql, "JOIN users") {
		t.Errorf("unwanted join in %q", sql)
	}

	byName := query.And(query.OfferIsOpen(42), query.OfferPublisherUsernameEquals("alice"))
	sql, args, err := buildOfferQuery("SELECT COUNT(*)", byName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "JOIN users u ON u.id = o.publisher_id") {
		t.Errorf("missing join in %q", sql)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want three bound values", args)
	}
}

func TestCompilePredicateUserColumns(t *testing.T) {
	var args []any
	p := query.And(query.UserUsernameEquals("alice"), query.UserIsEnabled())
	sql, err := compilePredicate(p, userColumns, &args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "((u.username = $1) AND (u.enabled = $2))"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 100},
		{-3, 100},
		{1, 1},
		{100, 100},
		{101, 100},
	}
	for _, tc := range tests {
		if got := clampLimit(tc.in); got != tc.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
