package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/handler"
)

// Handlers are the API handlers mounted by APIGroups
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Orders   *handler.OrderHandler
	Sessions *handler.SessionHandler
}

// Guards are the access middlewares of the API
type Guards struct {
	// Session resolves the session cookie and rejects anonymous requests
	Session gin.HandlerFunc
	// Concluded2FA rejects sessions still waiting for the second factor
	Concluded2FA gin.HandlerFunc
	// Throttle limits credential attempts per client
	Throttle gin.HandlerFunc
}

// APIGroups lays out the menu, ordering and session endpoints.
//
//	public    GET  /dishes /ingredients /pricing, POST /sessions, DELETE /sessions/current
//	session   GET  /sessions/current, POST /login-totp /skip-totp
//	ordering  POST /validate-order /orders, GET /orders /orders/history, DELETE /orders/:id
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	catalogRoutes := NewDomainGroup("catalog", "")
	catalogRoutes.GET("/dishes", h.Catalog.ListDishes).
		GET("/ingredients", h.Catalog.ListIngredients).
		GET("/pricing", h.Catalog.Pricing)

	sessionRoutes := NewDomainGroup("sessions", "")
	sessionRoutes.POST("/sessions", chain(g.Throttle, h.Sessions.Login)...).
		DELETE("/sessions/current", h.Sessions.Logout)
	sessionRoutes.Group("session", "").
		Use(nonNil(g.Session)...).
		GET("/sessions/current", h.Sessions.Current).
		POST("/login-totp", chain(g.Throttle, h.Sessions.VerifyTOTP)...).
		POST("/skip-totp", h.Sessions.SkipTOTP)

	orderRoutes := NewDomainGroup("ordering", "")
	orderRoutes.Use(nonNil(g.Session, g.Concluded2FA)...).
		POST("/validate-order", h.Orders.ValidateOrder).
		POST("/orders", h.Orders.SubmitOrder).
		GET("/orders", h.Orders.ListOrders).
		GET("/orders/history", h.Orders.OrderHistory).
		DELETE("/orders/:id", h.Orders.CancelOrder)

	return []*DomainGroup{catalogRoutes, sessionRoutes, orderRoutes}
}

func chain(guard gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(nonNil(guard), h)
}

func nonNil(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
