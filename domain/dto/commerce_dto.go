package dto

// CouponCreateRequest mints a batch of coupons of one duration.
type CouponCreateRequest struct {
	DurationMonths float64 `json:"duration_months" binding:"required"`
	Count          int     `json:"count,omitempty"`
}

// CouponRedeemRequest redeems a coupon code for the authenticated user.
type CouponRedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckoutRequest starts a plan purchase through the payment widget.
type CheckoutRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}
