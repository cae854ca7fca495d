package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

const (
	couponKeyPrefix = "coupon:"
	planKeyPrefix   = "plan:"
)

// CouponRepository persists coupons and subscription plans as JSON values in
// the key-value store, keyed by code and plan ID respectively.
type CouponRepository struct{ kv repository.IKVStore }

func NewCouponRepository(kv repository.IKVStore) repository.ICoupon {
	return &CouponRepository{kv: kv}
}

func (r *CouponRepository) SaveCoupon(ctx context.Context, c model.Coupon) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal coupon: %w", err)
	}
	return r.kv.Set(ctx, couponKeyPrefix+c.Code, string(raw))
}

func (r *CouponRepository) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	raw, err := r.kv.Get(ctx, couponKeyPrefix+code)
	if err != nil {
		return nil, err
	}
	var c model.Coupon
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("unmarshal coupon %s: %w", code, err)
	}
	return &c, nil
}

func (r *CouponRepository) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	keys, err := r.kv.Keys(ctx, couponKeyPrefix)
	if err != nil {
		return nil, err
	}
	coupons := make([]model.Coupon, 0, len(keys))
	for _, key := range keys {
		raw, err := r.kv.Get(ctx, key)
		if err != nil {
			// A key removed between Keys and Get is not an error.
			logger.GetLogger().WithField("key", key).Warn("coupon disappeared during listing")
			continue
		}
		var c model.Coupon
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			logger.GetLogger().WithField("key", key).Warn("skipping malformed coupon entry")
			continue
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

func (r *CouponRepository) SavePlan(ctx context.Context, p model.SubscriptionPlan) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return r.kv.Set(ctx, planKeyPrefix+p.ID, string(raw))
}

func (r *CouponRepository) GetPlan(ctx context.Context, planID string) (*model.SubscriptionPlan, error) {
	raw, err := r.kv.Get(ctx, planKeyPrefix+planID)
	if err != nil {
		return nil, err
	}
	var p model.SubscriptionPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan %s: %w", planID, err)
	}
	return &p, nil
}

func (r *CouponRepository) ListPlans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	keys, err := r.kv.Keys(ctx, planKeyPrefix)
	if err != nil {
		return nil, err
	}
	plans := make([]model.SubscriptionPlan, 0, len(keys))
	for _, key := range keys {
		raw, err := r.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		var p model.SubscriptionPlan
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			logger.GetLogger().WithField("key", key).Warn("skipping malformed plan entry")
			continue
		}
		plans = append(plans, p)
	}
	return plans, nil
}
