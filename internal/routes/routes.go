package routes

import (
	"maktaba_back_end/internal/handlers/admin"
	"maktaba_back_end/internal/handlers/book"
	"maktaba_back_end/internal/handlers/content"
	"maktaba_back_end/internal/handlers/payment"
	"maktaba_back_end/internal/handlers/user"
	"maktaba_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ================== AUTH ==================
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/refresh", user.Refresh)
		auth.POST("/logout", middleware.AuthRequired(), user.Logout)
		auth.POST("/guest", user.CreateGuestSession)

		auth.GET("/google", user.BeginGoogleAuth)
		auth.GET("/google/callback", user.GoogleCallback)

		auth.POST("/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
		auth.POST("/reset-password", user.ResetPassword)
	}

	// ================== ACCOUNT ==================
	me := api.Group("/me", middleware.AuthRequired())
	{
		me.GET("", user.Me)
		me.PUT("", user.UpdateProfile)
		me.PUT("/password", user.ChangePassword)

		me.GET("/addresses", user.ListAddresses)
		me.POST("/addresses", user.CreateAddress)
		me.PUT("/addresses/:id", user.UpdateAddress)
		me.PUT("/addresses/:id/default", user.SetDefaultAddress)
		me.DELETE("/addresses/:id", user.DeleteAddress)

		me.GET("/orders", user.MyOrders)
		me.GET("/orders/:id", user.MyOrderDetail)
		me.GET("/orders/:id/invoice", user.DownloadInvoice)
	}

	// ================== CART ==================
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/items", user.AddToCart)
		cart.PUT("/items", user.UpdateCartItem)
		cart.DELETE("/items", user.RemoveFromCart)
		cart.DELETE("", user.ClearCart)
	}

	guestCart := api.Group("/guest/cart", middleware.GuestRequired())
	{
		guestCart.GET("", user.GetGuestCart)
		guestCart.POST("/items", user.AddToGuestCart)
		guestCart.PUT("/items", user.UpdateGuestCartItem)
		guestCart.DELETE("/items", user.RemoveFromGuestCart)
		guestCart.DELETE("", user.ClearGuestCart)
	}

	// ================== CHECKOUT ==================
	checkout := api.Group("/checkout", middleware.GuestAllowed())
	{
		checkout.POST("", payment.CreateCheckout)
		checkout.POST("/verify", payment.VerifyPayment)
	}
	api.GET("/shipping/quote", payment.QuoteShipping)

	// ================== CATALOG ==================
	books := api.Group("/books")
	{
		books.GET("", book.ListBooks)
		books.GET("/search", book.SearchBooks)
		books.GET("/:id", book.GetBook)
	}

	// ================== CONTENT ==================
	articles := api.Group("/articles")
	{
		articles.GET("", content.ListArticles)
		articles.GET("/:id", content.GetArticle)
	}

	fatwahs := api.Group("/fatwahs")
	{
		fatwahs.GET("", content.ListFatwahs)
		fatwahs.GET("/:id", content.GetFatwah)
		fatwahs.POST("/ask", content.AskFatwah)
	}

	// ================== BACK OFFICE ==================
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/books", book.AdminListBooks)
		adminGroup.POST("/books", book.CreateBook)
		adminGroup.PUT("/books/:id", book.UpdateBook)
		adminGroup.DELETE("/books/:id", book.DeactivateBook)
		adminGroup.POST("/books/:id/images", book.UploadBookImage)

		adminGroup.GET("/orders", admin.ListOrders)
		adminGroup.GET("/orders/feed", admin.OrderFeed)
		adminGroup.GET("/orders/number/:number", admin.LookupOrderByNumber)
		adminGroup.GET("/orders/:id", admin.GetOrder)
		adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		adminGroup.PUT("/orders/:id/fulfillment", admin.UpdateFulfillment)
		adminGroup.POST("/orders/:id/refund", payment.RefundOrder)

		adminGroup.GET("/articles", content.AdminListArticles)
		adminGroup.GET("/articles/:id", content.AdminGetArticle)
		adminGroup.POST("/articles", content.CreateArticle)
		adminGroup.PUT("/articles/:id", content.UpdateArticle)
		adminGroup.PUT("/articles/:id/publish", content.PublishArticle)
		adminGroup.DELETE("/articles/:id", content.DeleteArticle)

		adminGroup.GET("/fatwahs", content.AdminListFatwahs)
		adminGroup.PUT("/fatwahs/:id/answer", content.AnswerFatwah)
		adminGroup.PUT("/fatwahs/:id/status", content.SetFatwahStatus)
		adminGroup.DELETE("/fatwahs/:id", content.DeleteFatwah)

		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.POST("/users/:id/ban", admin.BanUser)
		adminGroup.POST("/users/:id/unban", admin.UnbanUser)
	}
}
