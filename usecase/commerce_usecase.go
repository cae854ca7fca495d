package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
	"tubelens/infrastructure/utils"
)

// ICommerceUseCase covers coupons, plans and checkout.
type ICommerceUseCase interface {
	// GenerateCoupons mints count coupons of the given duration. The duration
	// must be one of the allowed values.
	GenerateCoupons(ctx context.Context, durationMonths float64, count int) ([]model.Coupon, error)
	// RedeemCoupon marks the coupon used and activates the subscription
	// window. A coupon redeems exactly once; the second attempt fails with no
	// state change.
	RedeemCoupon(ctx context.Context, userName, code string) (*model.Subscription, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	ListPlans(ctx context.Context) ([]model.SubscriptionPlan, error)
	// Checkout runs the payment widget flow for a plan and, on success,
	// activates the subscription window.
	Checkout(ctx context.Context, userName, planID string) (*model.Subscription, error)
	// SeedPlans writes the default plan catalog when none exists.
	SeedPlans(ctx context.Context) error
}

type CommerceUseCase struct {
	couponRepo repository.ICoupon
	userRepo   repository.IUser
	payment    repository.IPayment
}

func NewCommerceUseCase(couponRepo repository.ICoupon, userRepo repository.IUser, payment repository.IPayment) ICommerceUseCase {
	return &CommerceUseCase{couponRepo: couponRepo, userRepo: userRepo, payment: payment}
}

func validCouponDuration(months float64) bool {
	for _, d := range model.CouponDurations {
		if d == months {
			return true
		}
	}
	return false
}

// addMonths converts a possibly fractional month count into a window end.
// Whole months use calendar arithmetic; the fractional remainder counts as
// 30-day fractions so a half-month coupon is a clean 15 days.
func addMonths(start time.Time, months float64) time.Time {
	whole := int(months)
	frac := months - float64(whole)
	end := start.AddDate(0, whole, 0)
	if frac > 0 {
		end = end.Add(time.Duration(math.Round(frac*30*24)) * time.Hour)
	}
	return end
}

func (u *CommerceUseCase) GenerateCoupons(ctx context.Context, durationMonths float64, count int) ([]model.Coupon, error) {
	if !validCouponDuration(durationMonths) {
		return nil, fmt.Errorf("invalid coupon duration: %v months", durationMonths)
	}
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	coupons := make([]model.Coupon, 0, count)
	for i := 0; i < count; i++ {
		c := model.Coupon{
			ID:             uuid.NewString(),
			Code:           utils.GenerateCouponCode(),
			DurationMonths: durationMonths,
			IsUsed:         false,
			CreatedAt:      utils.GetCurrentTime(),
		}
		if err := u.couponRepo.SaveCoupon(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to save coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

func (u *CommerceUseCase) RedeemCoupon(ctx context.Context, userName, code string) (*model.Subscription, error) {
	coupon, err := u.couponRepo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("coupon not found")
	}
	if coupon.IsUsed {
		return nil, fmt.Errorf("coupon already used")
	}

	now := utils.GetCurrentTime()
	sub := &model.Subscription{
		PlanID: fmt.Sprintf("coupon-%gm", coupon.DurationMonths),
		Start:  now,
		End:    addMonths(now, coupon.DurationMonths),
		Source: "coupon",
	}
	if err := u.userRepo.SetSubscription(ctx, userName, sub.PlanID, sub.Start, sub.End); err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	coupon.IsUsed = true
	coupon.UsedBy = userName
	coupon.UsedAt = &now
	if err := u.couponRepo.SaveCoupon(ctx, *coupon); err != nil {
		// The subscription is already active; the stale coupon flag is the
		// lesser failure. Log it loudly and keep the redemption.
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"code":  code,
		}).Error("failed to mark coupon used after activation")
	}
	return sub, nil
}

func (u *CommerceUseCase) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return u.couponRepo.ListCoupons(ctx)
}

func (u *CommerceUseCase) ListPlans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	return u.couponRepo.ListPlans(ctx)
}

func (u *CommerceUseCase) Checkout(ctx context.Context, userName, planID string) (*model.Subscription, error) {
	plan, err := u.couponRepo.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found")
	}
	user, err := u.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	result, err := u.payment.RequestPayment(ctx, model.PaymentOrder{
		OrderID: uuid.NewString(),
		UserID:  user.UserName,
		PlanID:  plan.ID,
		Amount:  plan.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("payment declined: %s", result.Error)
	}

	now := utils.GetCurrentTime()
	sub := &model.Subscription{
		PlanID: plan.ID,
		Start:  now,
		End:    addMonths(now, plan.DurationMonths),
		Source: "payment",
	}
	if err := u.userRepo.SetSubscription(ctx, userName, sub.PlanID, sub.Start, sub.End); err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}
	return sub, nil
}

// SeedPlans installs the default catalog. Existing plans are left untouched.
func (u *CommerceUseCase) SeedPlans(ctx context.Context) error {
	existing, err := u.couponRepo.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []model.SubscriptionPlan{
		{ID: "basic-1m", Name: "Basic Monthly", Price: 9900, DurationMonths: 1},
		{ID: "pro-1m", Name: "Pro Monthly", Price: 19900, DurationMonths: 1},
		{ID: "pro-12m", Name: "Pro Yearly", Price: 199000, DurationMonths: 12, Discount: 0.17},
	}
	for _, p := range defaults {
		if err := u.couponRepo.SavePlan(ctx, p); err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", p.ID, err)
		}
	}
	return nil
}
