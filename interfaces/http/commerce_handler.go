package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tubelens/domain/dto"
	"tubelens/usecase"
)

// ICommerceHandler defines the coupon, plan and checkout HTTP handlers.
type ICommerceHandler interface {
	GenerateCoupons(ctx *gin.Context)
	ListCoupons(ctx *gin.Context)
	RedeemCoupon(ctx *gin.Context)
	ListPlans(ctx *gin.Context)
	Checkout(ctx *gin.Context)
}

type CommerceHandler struct {
	commerceUseCase usecase.ICommerceUseCase
}

func NewCommerceHandler(commerceUseCase usecase.ICommerceUseCase) ICommerceHandler {
	return &CommerceHandler{commerceUseCase: commerceUseCase}
}

// GenerateCoupons handles POST /api/coupons
func (h *CommerceHandler) GenerateCoupons(ctx *gin.Context) {
	var req dto.CouponCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	coupons, err := h.commerceUseCase.GenerateCoupons(ctx.Request.Context(), req.DurationMonths, req.Count)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to generate coupons", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": coupons})
}

// ListCoupons handles GET /api/coupons
func (h *CommerceHandler) ListCoupons(ctx *gin.Context) {
	coupons, err := h.commerceUseCase.ListCoupons(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list coupons", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": coupons})
}

// RedeemCoupon handles POST /api/coupons/redeem
func (h *CommerceHandler) RedeemCoupon(ctx *gin.Context) {
	var req dto.CouponRedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.commerceUseCase.RedeemCoupon(ctx.Request.Context(), ctx.GetString("user_name"), req.Code)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to redeem coupon", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": sub})
}

// ListPlans handles GET /api/plans
func (h *CommerceHandler) ListPlans(ctx *gin.Context) {
	plans, err := h.commerceUseCase.ListPlans(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plans", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": plans})
}

// Checkout handles POST /api/checkout
func (h *CommerceHandler) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.commerceUseCase.Checkout(ctx.Request.Context(), ctx.GetString("user_name"), req.PlanID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Checkout failed", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": sub})
}
