package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PasswordChangeRequest struct {
	Password string `json:"password"`
}

// OfferCreateRequest carries a new offer. Price is a decimal string; TTL is
// milliseconds from now.
type OfferCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	TTL         int64  `json:"ttl_ms"`
}

// OfferPatchRequest carries a partial update; absent fields stay unchanged.
type OfferPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Currency    *string `json:"currency"`
	TTL         *int64  `json:"ttl_ms"`
}
