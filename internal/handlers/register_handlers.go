package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	portssvc "github.com/peerpay/peerpay/internal/core/ports/services"
	"github.com/peerpay/peerpay/internal/middleware"
	"github.com/peerpay/peerpay/internal/platform/config"
)

// RegisterRoutes wires every handler into the gin engine. rdb may be nil, in
// which case the money-moving routes run without idempotency replay.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *portssvc.ServiceContainer, rdb *redis.Client) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAuthRoutes(r, cfg, svcs.User)
	setupAPIV1Routes(r, cfg, svcs, rdb)
}

// setupAPIV1Routes configures the authenticated /api/v1 routes.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs *portssvc.ServiceContainer, rdb *redis.Client) {
	userHandler := NewUserHandler(svcs.User)
	txnHandler := NewTransactionHandler(svcs.Transfer, svcs.Request)

	apiV1 := r.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		user := apiV1.Group("/user")
		{
			user.GET("/me", userHandler.Me)
		}

		txn := apiV1.Group("/transaction")
		{
			// Replay protection only matters where money moves.
			write := txn.Group("")
			if rdb != nil {
				write.Use(middleware.Idempotency(rdb))
			}
			write.POST("/send", txnHandler.Send)
			write.POST("/request", txnHandler.Request)
			write.POST("/request/approve", txnHandler.Approve)
			write.POST("/request/reject", txnHandler.Reject)

			txn.GET("/requests", txnHandler.ListRequests)
			txn.GET("/history", txnHandler.History)
		}
	}
}
