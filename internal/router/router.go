package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/offerdeck/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Offer  *apiHandler.OfferHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", authMiddleware(handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.PUT("/api/v1/account/password", authMiddleware(handlers.Auth.ChangePassword))

	// Anonymous read paths
	r.GET("/api/v1/offers", handlers.Offer.ListOffers)
	r.GET("/api/v1/offers/{id}", handlers.Offer.GetOffer)
	r.GET("/api/v1/offers/{id}/publisher", handlers.Offer.GetPublisher)

	// Publisher-only mutations
	r.POST("/api/v1/offers", authMiddleware(handlers.Offer.CreateOffer))
	r.PATCH("/api/v1/offers/{id}", authMiddleware(handlers.Offer.UpdateOffer))
	r.DELETE("/api/v1/offers/{id}", authMiddleware(handlers.Offer.CancelOffer))

	return r
}
