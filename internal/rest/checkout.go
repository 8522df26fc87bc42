package rest

import (
	"context"
	"net/http"
	"sedulurTani/business/checkout"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
	"sedulurTani/pkg/metrics"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CheckoutHandler struct {
		validate        *validator.Validate
		checkoutService CheckoutService
	}

	CheckoutService interface {
		CreateCheckout(ctx context.Context, userID uint, input checkout.CreateCheckoutInput) (domain.Checkout, error)
		GetCheckoutByID(ctx context.Context, id string, userID uint) (domain.Checkout, error)
	}

	CreateCheckoutRequest struct {
		AddressID      uint   `json:"address_id" validate:"required"`
		ShippingMethod string `json:"shipping_method"`
		Notes          string `json:"notes"`
	}
)

func NewCheckoutHandler(checkoutService CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		validate:        validator.New(),
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	start := time.Now()
	metrics.CheckoutAttempts.Inc()

	userID := c.Get("user_id").(uint)

	var request CreateCheckoutRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result, err := h.checkoutService.CreateCheckout(c.Request().Context(), userID, checkout.CreateCheckoutInput{
		AddressID:      request.AddressID,
		ShippingMethod: request.ShippingMethod,
		Notes:          request.Notes,
	})
	if err != nil {
		logger.Error("Failed to create checkout", err)
		if domain.IsInsufficientStock(err) {
			metrics.CheckoutOutOfStock.Inc()
		}
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	metrics.CheckoutCompleted.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(result))
}

func (h *CheckoutHandler) GetCheckoutByID(c echo.Context) error {
	id := c.Param("id")
	userID := c.Get("user_id").(uint)

	result, err := h.checkoutService.GetCheckoutByID(c.Request().Context(), id, userID)
	if err != nil {
		logger.Error("Failed to get checkout by id", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
