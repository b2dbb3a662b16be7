package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentService is the bridge to the payment processor. It only creates the
// intent; confirmation comes back through the finalize-purchase path with a
// transaction reference.
type PaymentService struct{}

func NewPaymentService(secretKey string) *PaymentService {
	stripe.Key = secretKey
	return &PaymentService{}
}

// CreateIntent returns the client secret the buyer uses to complete payment
// out-of-band. Amount is in the smallest currency unit and must be positive.
func (s *PaymentService) CreateIntent(ctx context.Context, amount int64, email string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amount),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(email),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
