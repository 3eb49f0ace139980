package payment

import "context"

// Repository defines persistence operations for payments.
// Implementations return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID uint) (*Payment, error)
	GetBySID(ctx context.Context, sid string) (*Payment, error)
	GetByOrderID(ctx context.Context, razorpayOrderID string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
}
