package transport

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/offerdeck/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and
// error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// OfferResponse is the external shape of an offer. TTL and Status are
// transient views computed against the clock at response time.
type OfferResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CreateTime  int64           `json:"create_time"`
	EndTime     int64           `json:"end_time"`
	TTL         int64           `json:"ttl_ms"`
	Status      string          `json:"status"`
	PublisherID string          `json:"publisher_id"`
}

func NewOfferResponse(o *domain.Offer, now int64) OfferResponse {
	return OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Price:       o.Price,
		Currency:    o.Currency,
		CreateTime:  o.CreateTime,
		EndTime:     o.EndTime,
		TTL:         o.TTL(now),
		Status:      string(o.Status(now)),
		PublisherID: o.PublisherID,
	}
}

func NewOfferResponses(offers []domain.Offer, now int64) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, NewOfferResponse(&offers[i], now))
	}
	return out
}

// UserResponse is the external shape of a user; credentials never leave.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Enabled  bool   `json:"enabled"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Enabled:  u.Enabled,
	}
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
