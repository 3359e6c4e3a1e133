package memory

import (
	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/query"
)

// matchOffer walks the predicate tree against one offer. The publisher
// username predicate resolves the publisher from the user table, mirroring
// the join the SQL adapter performs. Must be called with db.mu held.
func (db *DB) matchOffer(p query.Predicate, o *domain.Offer) bool {
	switch p.Op {
	case query.OpAnd:
		for _, arg := range p.Args {
			if !db.matchOffer(arg, o) {
				return false
			}
		}
		return true
	case query.OpNot:
		return len(p.Args) == 1 && !db.matchOffer(p.Args[0], o)
	case query.OpEq:
		switch p.Field {
		case query.OfferID:
			return o.ID == p.Value
		case query.OfferPublisherID:
			return o.PublisherID == p.Value
		case query.OfferPublisherUsername:
			publisher, ok := db.users[o.PublisherID]
			return ok && publisher.Username == p.Value
		case query.OfferCancelled:
			return o.Cancelled == p.Value
		case query.OfferEndTime:
			return o.EndTime == asInt64(p.Value)
		}
	case query.OpGt:
		if p.Field == query.OfferEndTime {
			return o.EndTime > asInt64(p.Value)
		}
	case query.OpLe:
		if p.Field == query.OfferEndTime {
			return o.EndTime <= asInt64(p.Value)
		}
	}
	return false
}

// matchUser walks the predicate tree against one user.
func matchUser(p query.Predicate, u *domain.User) bool {
	switch p.Op {
	case query.OpAnd:
		for _, arg := range p.Args {
			if !matchUser(arg, u) {
				return false
			}
		}
		return true
	case query.OpNot:
		return len(p.Args) == 1 && !matchUser(p.Args[0], u)
	case query.OpEq:
		switch p.Field {
		case query.UserID:
			return u.ID == p.Value
		case query.UserUsername:
			return u.Username == p.Value
		case query.UserEnabled:
			return u.Enabled == p.Value
		}
	}
	return false
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
