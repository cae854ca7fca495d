package repository

import (
	"context"

	"tubelens/domain/model"
)

// ICoupon defines coupon and plan persistence over the key-value store.
type ICoupon interface {
	SaveCoupon(ctx context.Context, c model.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)

	SavePlan(ctx context.Context, p model.SubscriptionPlan) error
	GetPlan(ctx context.Context, planID string) (*model.SubscriptionPlan, error)
	ListPlans(ctx context.Context) ([]model.SubscriptionPlan, error)
}

// IPayment is the narrow contract over the third-party payment widget.
// Nothing of the widget's internal state leaks past this boundary.
type IPayment interface {
	RequestPayment(ctx context.Context, order model.PaymentOrder) (*model.PaymentResult, error)
}
