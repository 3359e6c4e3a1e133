// Package query defines the composable predicate algebra used to address
// offers and users in a store. Predicates are pure values: building one has
// no side effects, and each store adapter translates the tree to its native
// query mechanism (SQL for Postgres, direct evaluation in memory).
package query

// Field names an addressable attribute of a stored entity.
type Field string

const (
	OfferID                Field = "offer.id"
	OfferPublisherID       Field = "offer.publisher_id"
	OfferPublisherUsername Field = "offer.publisher_username"
	OfferCancelled         Field = "offer.cancelled"
	OfferEndTime           Field = "offer.end_time"

	UserID       Field = "user.id"
	UserUsername Field = "user.username"
	UserEnabled  Field = "user.enabled"
)

// Op discriminates predicate variants.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpLe  Op = "le"
	OpAnd Op = "and"
	OpNot Op = "not"
)

// Predicate is one node of a predicate tree. Leaf nodes (OpEq, OpGt, OpLe)
// compare Field against Value; OpAnd and OpNot hold their operands in Args.
type Predicate struct {
	Op    Op
	Field Field
	Value any
	Args  []Predicate
}

// Eq matches entities whose field equals value.
func Eq(field Field, value any) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// Gt matches entities whose field is strictly greater than value.
func Gt(field Field, value any) Predicate {
	return Predicate{Op: OpGt, Field: field, Value: value}
}

// Le matches entities whose field is less than or equal to value.
func Le(field Field, value any) Predicate {
	return Predicate{Op: OpLe, Field: field, Value: value}
}

// And matches entities satisfying every given predicate. Operand order
// carries no meaning.
func And(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return Predicate{Op: OpAnd, Args: preds}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return Predicate{Op: OpNot, Args: []Predicate{p}}
}

// Offer predicates.

func OfferIDEquals(id string) Predicate {
	return Eq(OfferID, id)
}

func OfferPublisherIDEquals(userID string) Predicate {
	return Eq(OfferPublisherID, userID)
}

func OfferPublisherUsernameEquals(username string) Predicate {
	return Eq(OfferPublisherUsername, username)
}

func OfferIsCancelled() Predicate {
	return Eq(OfferCancelled, true)
}

// OfferIsExpired matches offers whose end time has passed at now (millis).
func OfferIsExpired(now int64) Predicate {
	return Le(OfferEndTime, now)
}

// OfferIsOpen matches offers that are neither cancelled nor expired at now.
func OfferIsOpen(now int64) Predicate {
	return And(Not(OfferIsCancelled()), Not(OfferIsExpired(now)))
}

// User predicates.

func UserIDEquals(id string) Predicate {
	return Eq(UserID, id)
}

func UserUsernameEquals(username string) Predicate {
	return Eq(UserUsername, username)
}

func UserIsEnabled() Predicate {
	return Eq(UserEnabled, true)
}

// References reports whether any leaf of the tree addresses the given field.
// Store adapters use it to decide when a join is needed.
func (p Predicate) References(field Field) bool {
	if p.Field == field {
		return true
	}
	for _, arg := range p.Args {
		if arg.References(field) {
			return true
		}
	}
	return false
}
