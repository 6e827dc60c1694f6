package response

type CheckoutResponse struct {
	URL string `json:"url"`
}

// SummaryResponse aggregates succeeded payments. TotalAmount is in the
// smallest currency unit; the formatted field is in whole units.
type SummaryResponse struct {
	TotalAmount          int64  `json:"totalAmount"`
	TotalAmountFormatted string `json:"totalAmountFormatted"`
	TotalCount           int64  `json:"totalCount"`
	Currency             string `json:"currency"`
}
