package echo

import (
	"crypto/subtle"

	e "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Functions *FunctionHandler
	Auth      *AuthHandler
	Portal    *PortalHandler
	Leads     *LeadHandler
}

type RouteConfig struct {
	Sessions SessionParser
	// FunctionsKey guards /functions/v1 with a bearer key. Empty leaves them open.
	FunctionsKey string
}

// RegisterRoutes mounts every handler that is non-nil.
func RegisterRoutes(server *e.Echo, h Handlers, cfg RouteConfig) {
	if h.Functions != nil {
		functions := server.Group("/functions/v1")
		if cfg.FunctionsKey != "" {
			functions.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
				Validator: func(key string, _ e.Context) (bool, error) {
					return subtle.ConstantTimeCompare([]byte(key), []byte(cfg.FunctionsKey)) == 1, nil
				},
			}))
		}
		functions.POST("/import_client_users", h.Functions.ImportClientUsers)
		functions.POST("/delete_client_users", h.Functions.DeleteClientUsers)
		functions.POST("/update_client_user", h.Functions.UpdateClientUser)
		functions.POST("/add_client_user", h.Functions.AddClientUser)
	}

	if h.Leads != nil {
		server.POST("/api/v1/contact", h.Leads.SubmitContact)
		server.POST("/api/v1/waitlist", h.Leads.JoinWaitlist)
	}

	if h.Auth != nil {
		server.POST("/api/v1/auth/login", h.Auth.Login)
		if cfg.Sessions != nil {
			server.GET("/api/v1/auth/session", h.Auth.Session, RequireSession(cfg.Sessions))
		}
	}

	if h.Portal != nil && cfg.Sessions != nil {
		portal := server.Group("/api/v1/portal", RequireSession(cfg.Sessions))
		portal.GET("/records", h.Portal.ListRecords)
		portal.POST("/records", h.Portal.AddRecord)
		portal.PATCH("/records/:id", h.Portal.UpdateRecord)
		portal.POST("/records/delete", h.Portal.DeleteRecords)
		portal.GET("/dashboard", h.Portal.Dashboard)
		portal.POST("/uploads/preview", h.Portal.PreviewUpload)
		portal.POST("/uploads/commit", h.Portal.CommitUpload)
		portal.GET("/uploads/sample", h.Portal.DownloadSample)
		portal.GET("/uploads/history", h.Portal.UploadHistory)
		portal.GET("/events", h.Portal.Events)
	}
}
