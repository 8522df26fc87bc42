package rest

import (
	"context"
	"net/http"
	"sedulurTani/business/address"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AddressHandler struct {
		validate       *validator.Validate
		addressService AddressService
	}

	AddressService interface {
		CreateAddress(ctx context.Context, userID uint, input address.CreateAddressInput) (domain.Address, error)
		GetAllAddresses(ctx context.Context, userID uint) ([]domain.Address, error)
		GetAddressByID(ctx context.Context, id, userID uint) (domain.Address, error)
		UpdateAddress(ctx context.Context, id, userID uint, input address.UpdateAddressInput) (domain.Address, error)
		DeleteAddress(ctx context.Context, id, userID uint) error
	}

	CreateAddressRequest struct {
		Label         string `json:"label" validate:"required"`
		RecipientName string `json:"recipient_name" validate:"required"`
		Phone         string `json:"phone" validate:"required"`
		AddressLine   string `json:"address_line" validate:"required"`
		City          string `json:"city" validate:"required"`
		Province      string `json:"province" validate:"required"`
		PostalCode    string `json:"postal_code" validate:"required"`
		IsDefault     bool   `json:"is_default"`
	}

	UpdateAddressRequest struct {
		Label         *string `json:"label"`
		RecipientName *string `json:"recipient_name"`
		Phone         *string `json:"phone"`
		AddressLine   *string `json:"address_line"`
		City          *string `json:"city"`
		Province      *string `json:"province"`
		PostalCode    *string `json:"postal_code"`
		IsDefault     *bool   `json:"is_default"`
	}
)

func NewAddressHandler(addressService AddressService) *AddressHandler {
	return &AddressHandler{
		validate:       validator.New(),
		addressService: addressService,
	}
}

func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CreateAddressRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate address request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	created, err := h.addressService.CreateAddress(c.Request().Context(), userID, address.CreateAddressInput{
		Label:         request.Label,
		RecipientName: request.RecipientName,
		Phone:         request.Phone,
		AddressLine:   request.AddressLine,
		City:          request.City,
		Province:      request.Province,
		PostalCode:    request.PostalCode,
		IsDefault:     request.IsDefault,
	})
	if err != nil {
		logger.Error("Failed to create address", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *AddressHandler) GetAllAddresses(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	addresses, err := h.addressService.GetAllAddresses(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to get addresses", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(addresses))
}

func (h *AddressHandler) GetAddressByID(c echo.Context) error {
	id := c.Param("id")
	addressID, _ := strconv.Atoi(id)

	userID := c.Get("user_id").(uint)

	result, err := h.addressService.GetAddressByID(c.Request().Context(), uint(addressID), userID)
	if err != nil {
		logger.Error("Failed to get address by id", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	id := c.Param("id")
	addressID, _ := strconv.Atoi(id)

	userID := c.Get("user_id").(uint)

	var request UpdateAddressRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	updated, err := h.addressService.UpdateAddress(c.Request().Context(), uint(addressID), userID, address.UpdateAddressInput{
		Label:         request.Label,
		RecipientName: request.RecipientName,
		Phone:         request.Phone,
		AddressLine:   request.AddressLine,
		City:          request.City,
		Province:      request.Province,
		PostalCode:    request.PostalCode,
		IsDefault:     request.IsDefault,
	})
	if err != nil {
		logger.Error("Failed to update address", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	id := c.Param("id")
	addressID, _ := strconv.Atoi(id)

	userID := c.Get("user_id").(uint)

	if err := h.addressService.DeleteAddress(c.Request().Context(), uint(addressID), userID); err != nil {
		logger.Error("Failed to delete address", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Address deleted successfully"))
}
