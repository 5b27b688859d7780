package payment_succeeded

// paymentSucceededEvent is published by the payment provider bridge once a
// charge settles.
type paymentSucceededEvent struct {
	ParcelID      int64  `json:"parcel_id"`
	Email         string `json:"email"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}
