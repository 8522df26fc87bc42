package rest

import (
	"context"
	"net/http"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CartHandler struct {
		validate    *validator.Validate
		cartService CartService
	}

	CartService interface {
		AddToCart(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error)
		GetCart(ctx context.Context, userID uint) (domain.CartSummary, error)
		UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (domain.CartItem, error)
		RemoveItem(ctx context.Context, userID, itemID uint) error
	}

	AddToCartRequest struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,gt=0"`
	}

	UpdateCartItemRequest struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
)

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		validate:    validator.New(),
		cartService: cartService,
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request AddToCartRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate add to cart request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	item, err := h.cartService.AddToCart(c.Request().Context(), userID, request.ProductID, request.Quantity)
	if err != nil {
		logger.Error("Failed to add item to cart", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	summary, err := h.cartService.GetCart(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	id := c.Param("id")
	itemID, _ := strconv.Atoi(id)

	userID := c.Get("user_id").(uint)

	var request UpdateCartItemRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart item update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	item, err := h.cartService.UpdateItem(c.Request().Context(), userID, uint(itemID), request.Quantity)
	if err != nil {
		logger.Error("Failed to update cart item", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CartHandler) RemoveCartItem(c echo.Context) error {
	id := c.Param("id")
	itemID, _ := strconv.Atoi(id)

	userID := c.Get("user_id").(uint)

	if err := h.cartService.RemoveItem(c.Request().Context(), userID, uint(itemID)); err != nil {
		logger.Error("Failed to remove cart item", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart item removed successfully"))
}
