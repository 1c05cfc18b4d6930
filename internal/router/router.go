package router

import (
	"net/http"
	"time"

	"github.com/artoasis/artoasis-backend/internal/config"
	"github.com/artoasis/artoasis-backend/internal/handler"
	"github.com/artoasis/artoasis-backend/internal/middleware"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Class     *handler.ClassHandler
	Selection *handler.SelectionHandler
	Payment   *handler.PaymentHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin routes with appropriate middlewares. The
// route shapes match the public API contract; every gated route passes the
// token check first and the role check second.
func SetupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	requireAuth := middleware.RequireAuth(authService)
	requireAdmin := middleware.RequireRole(userService, model.RoleAdmin)
	requireInstructor := middleware.RequireRole(userService, model.RoleInstructor)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Token issuing (rate limited) ──────────────────────────────────
	tokenLimiter := middleware.NewRateLimiter(30, time.Minute)
	router.POST("/jwt", tokenLimiter.Middleware(), handlers.Auth.IssueToken)

	// ─── Users ─────────────────────────────────────────────────────────
	router.POST("/users", handlers.User.CreateUser)
	router.GET("/users", requireAuth, requireAdmin, handlers.User.ListUsers)
	router.GET("/instructors", handlers.User.ListInstructors)
	router.GET("/users/:role/:email", requireAuth, handlers.User.CheckRole)
	router.PATCH("/users/:role/:id", requireAuth, requireAdmin, handlers.User.Promote)

	// ─── Classes ───────────────────────────────────────────────────────
	router.POST("/classes", requireAuth, requireInstructor, handlers.Class.CreateClass)
	router.GET("/classes", requireAuth, requireAdmin, handlers.Class.ListClasses)
	router.GET("/classes/instructor/:email", requireAuth, requireInstructor, handlers.Class.ListOwnClasses)
	router.GET("/approvedClasses", handlers.Class.ListApproved)
	router.GET("/class/:id", requireAuth, handlers.Class.GetClass)
	router.PATCH("/class/:id", requireAuth, handlers.Class.UpdateClass)
	router.PATCH("/class/updateCount/:classId", requireAuth, handlers.Class.IncrementEnrollment)
	router.PATCH("/instructor/class/:id", requireAuth, handlers.Class.AttachFeedback)
	router.PATCH("/approve/classes/:id", requireAuth, requireAdmin, handlers.Class.ApproveClass)
	router.PATCH("/deny/classes/:id", requireAuth, requireAdmin, handlers.Class.DenyClass)

	// ─── Selections ────────────────────────────────────────────────────
	router.POST("/selected/class", requireAuth, handlers.Selection.SelectClass)
	router.GET("/selected/classes/:email", requireAuth, handlers.Selection.ListSelections)
	router.DELETE("/selected/class/:id", requireAuth, handlers.Selection.RemoveSelection)

	// ─── Payments ──────────────────────────────────────────────────────
	router.POST("/create-payment-intent", requireAuth, handlers.Payment.CreatePaymentIntent)
	router.POST("/payments", requireAuth, handlers.Payment.RecordPayment)
	router.GET("/payments/enrolled/:email", requireAuth, handlers.Payment.ListPayments)

	// ─── WebSocket (admin event stream) ────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService), requireAdmin)
	{
		ws.GET("/classes/stream", handlers.WS.ClassEventStream)
	}

	return router
}
