package http

import (
	"github.com/gin-gonic/gin"
	"github.com/onboardly/dirprov/internal/api/http/handler"
	"github.com/onboardly/dirprov/internal/api/http/middleware"
	"github.com/onboardly/dirprov/internal/audit"
)

type Services struct {
	Provisioner handler.Provisioner
	AuditStore  *audit.Store
	APIKeyHash  string
}

func SetupRoute(engine *gin.Engine, srvs *Services) {
	engine.Use(middleware.RequestLogger())

	healthHandler := handler.NewHealthHandler()
	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api/v1", middleware.APIKeyAuth(srvs.APIKeyHash))

	onboardHandler := handler.NewOnboardHandler(srvs.Provisioner, srvs.AuditStore)
	api.POST("/onboard", onboardHandler.Onboard)

	auditHandler := handler.NewAuditHandler(srvs.AuditStore)
	api.GET("/audit", auditHandler.ListRecent)
}
