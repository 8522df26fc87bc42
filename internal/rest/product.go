package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
	"strconv"
	"strings"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxProductImageSize = 5 << 20 // 5MB

var allowedImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type (
	ProductHandler struct {
		validate       *validator.Validate
		productService ProductService
	}

	ProductService interface {
		GetAllProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
		GetProductByID(ctx context.Context, id uint) (domain.Product, error)
		CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
		UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
		UploadProductImage(ctx context.Context, sellerID, id uint, filename string, content []byte) (*domain.Product, error)
		DeleteProduct(ctx context.Context, sellerID, id uint) error
	}

	ProductRequest struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Weight      int    `json:"weight" validate:"required,gt=0"`
		Price       int64  `json:"price" validate:"required,gt=0"`
		Stock       int    `json:"stock" validate:"gte=0"`
		ImageURL    string `json:"image_url"`
	}
)

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		productService: productService,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	var filter domain.ProductFilter

	if v := c.QueryParam("seller_id"); v != "" {
		sellerID, _ := strconv.Atoi(v)
		filter.SellerID = uint(sellerID)
	}
	filter.Search = c.QueryParam("search")
	if v := c.QueryParam("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.QueryParam("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseInt(v, 10, 64)
	}
	filter.InStock = c.QueryParam("in_stock") == "true"

	products, err := h.productService.GetAllProducts(c.Request().Context(), filter)
	if err != nil {
		logger.Error("Failed to get all products", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id := c.Param("id")
	productID, _ := strconv.Atoi(id)

	product, err := h.productService.GetProductByID(c.Request().Context(), uint(productID))
	if err != nil {
		logger.Error("Failed to get product by id", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)

	var request ProductRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), sellerID, &domain.Product{
		Name:        request.Name,
		Description: request.Description,
		Weight:      request.Weight,
		Price:       request.Price,
		Stock:       request.Stock,
		ImageURL:    request.ImageURL,
	})
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	productID, _ := strconv.Atoi(id)

	sellerID := c.Get("user_id").(uint)

	var request ProductRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), sellerID, &domain.Product{
		ID:          uint(productID),
		Name:        request.Name,
		Description: request.Description,
		Weight:      request.Weight,
		Price:       request.Price,
		Stock:       request.Stock,
		ImageURL:    request.ImageURL,
	})
	if err != nil {
		logger.Error("Failed to update product", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// validateProductImage enforces the upload limits: image extensions and
// content type only, 5MB max.
func validateProductImage(filename, contentType string, size int64) error {
	if size > maxProductImageSize {
		return errors.New("image must be 5MB or smaller")
	}

	if !allowedImageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	}

	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	}

	return nil
}

func (h *ProductHandler) UploadProductImage(c echo.Context) error {
	id := c.Param("id")
	productID, _ := strconv.Atoi(id)

	sellerID := c.Get("user_id").(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		logger.Error("Missing image file in upload request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "image file is required"})
	}

	if err := validateProductImage(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded image", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "failed to read image file"})
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxProductImageSize+1))
	if err != nil {
		logger.Error("Failed to read uploaded image", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "failed to read image file"})
	}
	if len(content) > maxProductImageSize {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "image must be 5MB or smaller"})
	}

	product, err := h.productService.UploadProductImage(c.Request().Context(), sellerID, uint(productID), fileHeader.Filename, content)
	if err != nil {
		logger.Error("Failed to upload product image", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	productID, _ := strconv.Atoi(id)

	sellerID := c.Get("user_id").(uint)

	if err := h.productService.DeleteProduct(c.Request().Context(), sellerID, uint(productID)); err != nil {
		logger.Error("Failed to delete product", err)
		return c.JSON(statusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}
