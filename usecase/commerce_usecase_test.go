package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tubelens/domain/model"
	"tubelens/infrastructure/cache"
	"tubelens/infrastructure/persistence"
	"tubelens/usecase"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetById(ctx context.Context, id int) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetSubscription(ctx context.Context, userName, planID string, start, end time.Time) error {
	args := m.Called(ctx, userName, planID, start, end)
	return args.Error(0)
}

type MockPayment struct {
	mock.Mock
}

func (m *MockPayment) RequestPayment(ctx context.Context, order model.PaymentOrder) (*model.PaymentResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentResult), args.Error(1)
}

func newCommerceFixture(t *testing.T) (usecase.ICommerceUseCase, *MockUserRepository, *MockPayment) {
	t.Helper()
	couponRepo := persistence.NewCouponRepository(cache.NewMemoryKV())
	mockUser := new(MockUserRepository)
	mockPayment := new(MockPayment)
	return usecase.NewCommerceUseCase(couponRepo, mockUser, mockPayment), mockUser, mockPayment
}

func TestGenerateCoupons(t *testing.T) {
	commerceUseCase, _, _ := newCommerceFixture(t)

	coupons, err := commerceUseCase.GenerateCoupons(context.Background(), 1, 5)

	assert.Nil(t, err)
	assert.Equal(t, 5, len(coupons))
	seen := map[string]bool{}
	for _, c := range coupons {
		assert.Regexp(t, `^[A-Z2-9]{4}-[A-Z2-9]{4}-[A-Z2-9]{4}$`, c.Code)
		assert.False(t, c.IsUsed)
		assert.Equal(t, 1.0, c.DurationMonths)
		assert.False(t, seen[c.Code])
		seen[c.Code] = true
	}

	listed, err := commerceUseCase.ListCoupons(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 5, len(listed))
}

func TestGenerateCoupons_InvalidDuration(t *testing.T) {
	commerceUseCase, _, _ := newCommerceFixture(t)

	coupons, err := commerceUseCase.GenerateCoupons(context.Background(), 2, 1)

	assert.Nil(t, coupons)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid coupon duration")
}

func TestGenerateCoupons_CountClamped(t *testing.T) {
	commerceUseCase, _, _ := newCommerceFixture(t)

	coupons, err := commerceUseCase.GenerateCoupons(context.Background(), 0.5, 0)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(coupons))

	coupons, err = commerceUseCase.GenerateCoupons(context.Background(), 0.5, 1000)
	assert.Nil(t, err)
	assert.Equal(t, 100, len(coupons))
}

func TestRedeemCoupon_SingleUse(t *testing.T) {
	commerceUseCase, mockUser, _ := newCommerceFixture(t)
	coupons, err := commerceUseCase.GenerateCoupons(context.Background(), 3, 1)
	assert.Nil(t, err)
	code := coupons[0].Code

	mockUser.On("SetSubscription", mock.Anything, "tulus", "coupon-3m", mock.Anything, mock.Anything).
		Return(nil).Once()

	sub, err := commerceUseCase.RedeemCoupon(context.Background(), "tulus", code)
	assert.Nil(t, err)
	assert.Equal(t, "coupon", sub.Source)
	assert.Equal(t, "coupon-3m", sub.PlanID)
	assert.InDelta(t, sub.Start.AddDate(0, 3, 0).Unix(), sub.End.Unix(), 1)

	// The second redemption fails and changes nothing.
	sub, err = commerceUseCase.RedeemCoupon(context.Background(), "other", code)
	assert.Nil(t, sub)
	assert.NotNil(t, err)
	assert.Equal(t, "coupon already used", err.Error())

	listed, err := commerceUseCase.ListCoupons(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(listed))
	assert.True(t, listed[0].IsUsed)
	assert.Equal(t, "tulus", listed[0].UsedBy)
	mockUser.AssertNumberOfCalls(t, "SetSubscription", 1)
}

func TestRedeemCoupon_HalfMonthWindow(t *testing.T) {
	commerceUseCase, mockUser, _ := newCommerceFixture(t)
	coupons, err := commerceUseCase.GenerateCoupons(context.Background(), 0.5, 1)
	assert.Nil(t, err)

	mockUser.On("SetSubscription", mock.Anything, "tulus", "coupon-0.5m", mock.Anything, mock.Anything).
		Return(nil).Once()

	sub, err := commerceUseCase.RedeemCoupon(context.Background(), "tulus", coupons[0].Code)
	assert.Nil(t, err)
	assert.Equal(t, 15*24*time.Hour, sub.End.Sub(sub.Start))
}

func TestRedeemCoupon_UnknownCode(t *testing.T) {
	commerceUseCase, _, _ := newCommerceFixture(t)

	sub, err := commerceUseCase.RedeemCoupon(context.Background(), "tulus", "NO-SUCH-CODE")
	assert.Nil(t, sub)
	assert.NotNil(t, err)
	assert.Equal(t, "coupon not found", err.Error())
}

func TestCheckout_Success(t *testing.T) {
	commerceUseCase, mockUser, mockPayment := newCommerceFixture(t)
	assert.Nil(t, commerceUseCase.SeedPlans(context.Background()))

	mockUser.On("GetByUserName", mock.Anything, "tulus").
		Return(model.User{ID: 1, UserName: "tulus", Name: "Tulus"}, nil).Once()
	mockPayment.On("RequestPayment", mock.Anything, mock.MatchedBy(func(order model.PaymentOrder) bool {
		return order.PlanID == "pro-1m" && order.Amount == 19900 && order.UserID == "tulus" && order.OrderID != ""
	})).Return(&model.PaymentResult{Success: true}, nil).Once()
	mockUser.On("SetSubscription", mock.Anything, "tulus", "pro-1m", mock.Anything, mock.Anything).
		Return(nil).Once()

	sub, err := commerceUseCase.Checkout(context.Background(), "tulus", "pro-1m")

	assert.Nil(t, err)
	assert.Equal(t, "payment", sub.Source)
	assert.Equal(t, "pro-1m", sub.PlanID)
	mockUser.AssertExpectations(t)
	mockPayment.AssertExpectations(t)
}

func TestCheckout_Declined(t *testing.T) {
	commerceUseCase, mockUser, mockPayment := newCommerceFixture(t)
	assert.Nil(t, commerceUseCase.SeedPlans(context.Background()))

	mockUser.On("GetByUserName", mock.Anything, "tulus").
		Return(model.User{ID: 1, UserName: "tulus"}, nil).Once()
	mockPayment.On("RequestPayment", mock.Anything, mock.Anything).
		Return(&model.PaymentResult{Success: false, Error: "card expired"}, nil).Once()

	sub, err := commerceUseCase.Checkout(context.Background(), "tulus", "basic-1m")

	assert.Nil(t, sub)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "payment declined: card expired")
	mockUser.AssertNotCalled(t, "SetSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_UnknownPlan(t *testing.T) {
	commerceUseCase, _, mockPayment := newCommerceFixture(t)

	sub, err := commerceUseCase.Checkout(context.Background(), "tulus", "no-such-plan")

	assert.Nil(t, sub)
	assert.NotNil(t, err)
	assert.Equal(t, "plan not found", err.Error())
	mockPayment.AssertNotCalled(t, "RequestPayment", mock.Anything, mock.Anything)
}

func TestCheckout_UnknownUser(t *testing.T) {
	commerceUseCase, mockUser, mockPayment := newCommerceFixture(t)
	assert.Nil(t, commerceUseCase.SeedPlans(context.Background()))

	mockUser.On("GetByUserName", mock.Anything, "ghost").
		Return(model.User{}, errors.New("record not found")).Once()

	sub, err := commerceUseCase.Checkout(context.Background(), "ghost", "basic-1m")

	assert.Nil(t, sub)
	assert.NotNil(t, err)
	mockPayment.AssertNotCalled(t, "RequestPayment", mock.Anything, mock.Anything)
}

func TestSeedPlans_Idempotent(t *testing.T) {
	commerceUseCase, _, _ := newCommerceFixture(t)

	assert.Nil(t, commerceUseCase.SeedPlans(context.Background()))
	plans, err := commerceUseCase.ListPlans(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 3, len(plans))

	// Seeding again leaves the catalog unchanged.
	assert.Nil(t, commerceUseCase.SeedPlans(context.Background()))
	plans, err = commerceUseCase.ListPlans(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 3, len(plans))
}
