package route

import (
	"github.com/gin-gonic/gin"

	"kedai/controller"
	"kedai/model"
	"kedai/utils"
)

func RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	{
		auth.POST("/request-otp", controller.RequestOtp)
		auth.POST("/verify-otp", controller.VerifyOtp)
		auth.POST("/admin-login", controller.AdminLogin)
		auth.POST("/refresh-token", controller.RefreshTokenFunc)
		auth.GET("/me", utils.AuthMiddleware(), controller.Me)
	}

	// Public storefront reads.
	router.GET("/products", controller.ListProducts)
	router.GET("/products/:id", controller.GetProductByID)
	router.GET("/promos", controller.ListPromos)
	router.GET("/promos/:id", controller.GetPromoByID)
	router.GET("/promos/:id/products", controller.GetPromoProducts)
	router.GET("/special-events", controller.ListSpecialEvents)

	products := router.Group("/products", utils.AuthMiddleware(model.RoleAdmin))
	{
		products.POST("", controller.AddProduct)
		products.POST("/import/excel", controller.BulkImportProducts)
		products.PUT("/:id", controller.UpdateProduct)
		products.DELETE("/:id", controller.DeleteProduct)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", utils.AuthMiddleware(), controller.CreateOrder)
		orders.GET("/:id", utils.AuthMiddleware(), controller.GetOrderByID)
		orders.GET("", utils.AuthMiddleware(model.RoleKasir, model.RoleAdmin), controller.ListOrders)
		orders.PUT("/:id/status", utils.AuthMiddleware(model.RoleKasir, model.RoleAdmin), controller.UpdateOrderStatus)
		orders.DELETE("/:id", utils.AuthMiddleware(model.RoleAdmin), controller.DeleteOrder)
		orders.GET("/reports/sales", utils.AuthMiddleware(model.RoleKasir, model.RoleAdmin), controller.SalesReport)
		orders.GET("/reports/sales/export", utils.AuthMiddleware(model.RoleKasir, model.RoleAdmin), controller.ExportSalesReport)
	}

	payments := router.Group("/payments", utils.AuthMiddleware())
	{
		payments.POST("/qris", controller.CreateQrisPayment)
		payments.GET("/:id", controller.GetPaymentByID)
		payments.GET("/status/:orderId", controller.GetPaymentStatusByOrder)
		payments.GET("/:id/wait", controller.WaitForPayment)
		payments.POST("/simulate", controller.SimulatePayment)
	}
	router.PUT("/payments/:id/status",
		utils.AuthMiddleware(model.RoleKasir, model.RoleAdmin),
		controller.UpdatePaymentStatus)

	users := router.Group("/users", utils.AuthMiddleware(model.RoleAdmin))
	{
		users.GET("", controller.ListUsers)
		users.GET("/:id", controller.GetUserByID)
		users.POST("", controller.CreateUser)
		users.PUT("/:id", controller.UpdateUser)
		users.DELETE("/:id", controller.DeleteUser)
	}
}
