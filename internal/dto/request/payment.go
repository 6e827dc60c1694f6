package request

// CheckoutRequest starts a one-off support payment. Amount is in the
// smallest currency unit; the provider enforces the same 50-unit floor.
type CheckoutRequest struct {
	Amount   int64  `json:"amount" validate:"required,min=50"`
	Currency string `json:"currency,omitempty"`
}
