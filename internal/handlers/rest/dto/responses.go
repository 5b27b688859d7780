package dto

import "parcel-service/internal/entities"

type PingResponse struct {
	Message string `json:"message"`
}

type SignInResponse struct {
	Message  string `json:"message"`
	Inserted bool   `json:"inserted"`
	User     User   `json:"user"`
}

type RoleResponse struct {
	Role string `json:"role"`
}

// PaymentResponse reports which writes a payment request applied.
type PaymentResponse struct {
	Payment          Payment `json:"payment"`
	PaymentRecorded  bool    `json:"payment_recorded"`
	ParcelMarkedPaid bool    `json:"parcel_marked_paid"`
	AlreadyRecorded  bool    `json:"already_recorded"`
}

type PaymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type AssignmentResponse struct {
	Parcel        Parcel `json:"parcel"`
	ParcelUpdated bool   `json:"parcel_updated"`
	RiderUpdated  bool   `json:"rider_updated"`
}

type RiderTransitionResponse struct {
	Rider        Rider `json:"rider"`
	RiderUpdated bool  `json:"rider_updated"`
	RoleUpdated  bool  `json:"role_updated"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func FromPaymentResult(r *entities.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Payment:          FromPayment(&r.Payment),
		PaymentRecorded:  r.PaymentRecorded,
		ParcelMarkedPaid: r.ParcelMarkedPaid,
		AlreadyRecorded:  r.AlreadyRecorded,
	}
}

func FromPaymentIntent(i *entities.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		ID:           i.ID,
		ClientSecret: i.ClientSecret,
		Amount:       i.Amount,
		Currency:     i.Currency,
	}
}

func FromAssignment(r *entities.AssignmentResult) AssignmentResponse {
	return AssignmentResponse{
		Parcel:        FromParcel(&r.Parcel),
		ParcelUpdated: r.ParcelUpdated,
		RiderUpdated:  r.RiderUpdated,
	}
}

func FromRiderTransition(r *entities.RiderTransitionResult) RiderTransitionResponse {
	return RiderTransitionResponse{
		Rider:        FromRider(&r.Rider),
		RiderUpdated: r.RiderUpdated,
		RoleUpdated:  r.RoleUpdated,
	}
}
