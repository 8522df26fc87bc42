package router

import (
	"sedulurTani/internal/middleware"
	"sedulurTani/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetProfile, authRequired)
	users.PUT("/me", handler.UpdateUser, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
}

func SetupAddressRoutes(api *echo.Group, handler *rest.AddressHandler, authRequired echo.MiddlewareFunc) {
	addresses := api.Group("/addresses", authRequired)

	addresses.POST("", handler.CreateAddress)
	addresses.GET("", handler.GetAllAddresses)
	addresses.GET("/:id", handler.GetAddressByID)
	addresses.PUT("/:id", handler.UpdateAddress)
	addresses.DELETE("/:id", handler.DeleteAddress)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, sellerOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, sellerOnly)
	products.POST("/:id/image", handler.UploadProductImage, authRequired, sellerOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, sellerOnly)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := api.Group("/cart", authRequired)

	cart.GET("", handler.GetCart)
	cart.POST("/items", handler.AddToCart)
	cart.PUT("/items/:id", handler.UpdateCartItem)
	cart.DELETE("/items/:id", handler.RemoveCartItem)
}

func SetupCheckoutRoutes(api *echo.Group, handler *rest.CheckoutHandler, authRequired echo.MiddlewareFunc) {
	checkouts := api.Group("/checkouts", authRequired)

	checkouts.POST("", handler.CreateCheckout)
	checkouts.GET("/:id", handler.GetCheckoutByID)
}

// SetupMetricsRoute exposes prometheus metrics to admin tokens. The plain
// JWT middleware keeps the scrape path independent of Redis.
func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.AuthMiddleware(), middleware.AdminOnly())
}
