package routes

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/handlers"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/middleware"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

func RegisterRoutes(e *echo.Echo, s store.Store, logger *slog.Logger) {
	statusSvc := services.NewPropertyStatusService(s)
	offerSvc := services.NewOfferService(s, statusSvc, logger)
	accountSvc := services.NewAccountService(s, logger)
	paymentSvc := services.NewPaymentService(os.Getenv("STRIPE_SECRET_KEY"))

	estates := handlers.NewEstateController(s, statusSvc)
	offers := handlers.NewOfferController(s, offerSvc)
	users := handlers.NewUserController(s, accountSvc)
	reviews := handlers.NewReviewController(s)
	wishlist := handlers.NewWishlistController(s)
	payments := handlers.NewPaymentController(paymentSvc)

	e.GET("/health", handlers.HealthCheck)

	e.POST("/register", users.Register)
	e.POST("/login", users.Login)

	e.GET("/estates", estates.ListEstates)
	e.GET("/reviews", reviews.ListReviews)
	e.GET("/reviews/estate/:estateId", reviews.ListByEstate)
	e.GET("/reviews/user/:email", reviews.ListByAuthor)
	e.POST("/offers", offers.SubmitOffer)
	e.GET("/offers/:email", offers.ListOffersByBuyer)

	auth := e.Group("", middleware.JWTMiddleware())

	auth.GET("/estates/:id", estates.GetEstate)
	auth.GET("/properties", estates.ListByAgent)
	auth.POST("/addProperty", estates.CreateEstate)
	auth.PUT("/updateProperty/:id", estates.UpdateEstate)
	auth.DELETE("/deleteProperty/:id", estates.DeleteEstate)

	auth.GET("/offers", offers.ListOffers)
	auth.PATCH("/offers/:id/status", offers.DecideOffer)
	auth.PUT("/purchase/:estateId", offers.FinalizePurchase)
	auth.GET("/sold-properties/:agentName", offers.SoldByAgent)

	auth.POST("/users", users.UpsertUser)
	auth.DELETE("/users/byEmail/:email", users.DeleteUserByEmail)

	auth.POST("/reviews", reviews.CreateReview)
	auth.DELETE("/reviews/:reviewId", reviews.DeleteReview)

	auth.POST("/wishlist", wishlist.AddToWishlist)
	auth.GET("/wishlist/:email", wishlist.ListWishlist)
	auth.DELETE("/wishlist/:estateId", wishlist.RemoveFromWishlist)

	auth.POST("/create-payment-intent", payments.CreatePaymentIntent)

	admin := auth.Group("", middleware.AdminOnly())

	admin.PATCH("/verifyProperty/:id", estates.VerifyEstate)
	admin.PATCH("/rejectProperty/:id", estates.RejectEstate)

	admin.GET("/users", users.ListUsers)
	admin.POST("/users/:id/make-admin", users.MakeAdmin)
	admin.POST("/users/:id/make-agent", users.MakeAgent)
	admin.POST("/users/:id/mark-fraud", users.MarkFraud)
	admin.DELETE("/users/:id", users.DeleteUserByID)
}
