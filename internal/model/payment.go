package model

import "time"

// Payment is an immutable record of a completed charge. Rows are append
// only; nothing in the system updates or deletes them.
type Payment struct {
	ID            int64     `json:"id"`
	StudentEmail  string    `json:"student_email"`
	ClassID       int64     `json:"class_id"`
	ClassName     string    `json:"class_name"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

// CreatePaymentIntentRequest is the payload for POST /create-payment-intent.
// Price is in major currency units; the gateway receives cents.
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// RecordPaymentRequest is the payload for POST /payments, sent after the
// client confirms the charge with the processor. The student identity comes
// from the caller's token.
type RecordPaymentRequest struct {
	ClassID       int64   `json:"class_id" binding:"required,gt=0"`
	ClassName     string  `json:"class_name" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	TransactionID string  `json:"transaction_id" binding:"required"`
}
