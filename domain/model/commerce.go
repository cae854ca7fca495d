package model

import "time"

// Coupon is a single-use subscription voucher. IsUsed transitions false to
// true exactly once and is never reverted.
type Coupon struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"` // XXXX-XXXX-XXXX
	DurationMonths float64    `json:"duration_months"`
	IsUsed         bool       `json:"is_used"`
	CreatedAt      time.Time  `json:"created_at"`
	UsedBy         string     `json:"used_by,omitempty"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
}

// CouponDurations are the durations a coupon may carry, in months.
var CouponDurations = []float64{0.5, 1, 3, 6, 12}

// SubscriptionPlan is a purchasable subscription tier.
type SubscriptionPlan struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          int64   `json:"price"`
	DurationMonths float64 `json:"duration_months"`
	Discount       float64 `json:"discount,omitempty"`
}

// Subscription is a user's active subscription window. A user holds at most
// one window at a time and Start is never after End.
type Subscription struct {
	PlanID string    `json:"plan_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Source string    `json:"source"` // "payment" or "coupon"
}

// Active reports whether the window covers the given instant.
func (s *Subscription) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	return !now.Before(s.Start) && !now.After(s.End)
}

// PaymentOrder is the request handed to the external payment widget.
type PaymentOrder struct {
	OrderID string `json:"order_id" url:"order_id"`
	UserID  string `json:"user_id" url:"user_id"`
	PlanID  string `json:"plan_id" url:"plan_id"`
	Amount  int64  `json:"amount" url:"amount"`
}

// PaymentResult is the widget's opaque outcome. Nothing beyond this leaks
// into the subscription model.
type PaymentResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
