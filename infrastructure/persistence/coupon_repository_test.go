package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tubelens/domain/model"
	"tubelens/infrastructure/cache"
)

func TestCouponRepository_SaveAndGet(t *testing.T) {
	repository := NewCouponRepository(cache.NewMemoryKV())

	coupon := model.Coupon{
		ID:             "id-1",
		Code:           "AAAA-BBBB-CCCC",
		DurationMonths: 3,
		CreatedAt:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repository.SaveCoupon(context.Background(), coupon))

	got, err := repository.GetCouponByCode(context.Background(), "AAAA-BBBB-CCCC")
	require.NoError(t, err)
	require.Equal(t, coupon, *got)
}

func TestCouponRepository_GetUnknownCode(t *testing.T) {
	repository := NewCouponRepository(cache.NewMemoryKV())

	got, err := repository.GetCouponByCode(context.Background(), "NO-SUCH-CODE")
	require.Error(t, err)
	require.Nil(t, got)
}

func TestCouponRepository_ListSkipsMalformedEntries(t *testing.T) {
	kv := cache.NewMemoryKV()
	repository := NewCouponRepository(kv)

	require.NoError(t, repository.SaveCoupon(context.Background(), model.Coupon{ID: "id-1", Code: "AAAA-BBBB-CCCC"}))
	require.NoError(t, kv.Set(context.Background(), "coupon:BROKEN", "{not json"))

	coupons, err := repository.ListCoupons(context.Background())
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	require.Equal(t, "AAAA-BBBB-CCCC", coupons[0].Code)
}

func TestCouponRepository_PlansAreSeparateFromCoupons(t *testing.T) {
	repository := NewCouponRepository(cache.NewMemoryKV())

	require.NoError(t, repository.SaveCoupon(context.Background(), model.Coupon{ID: "id-1", Code: "AAAA-BBBB-CCCC"}))
	require.NoError(t, repository.SavePlan(context.Background(), model.SubscriptionPlan{ID: "pro-1m", Name: "Pro Monthly", Price: 19900, DurationMonths: 1}))

	plans, err := repository.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan, err := repository.GetPlan(context.Background(), "pro-1m")
	require.NoError(t, err)
	require.Equal(t, int64(19900), plan.Price)

	coupons, err := repository.ListCoupons(context.Background())
	require.NoError(t, err)
	require.Len(t, coupons, 1)
}
