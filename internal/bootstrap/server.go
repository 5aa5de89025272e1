package bootstrap

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	accountapp "github.com/arkenix/client-portal/internal/application/account"
	contactapp "github.com/arkenix/client-portal/internal/application/contact"
	leadapp "github.com/arkenix/client-portal/internal/application/lead"
	"github.com/arkenix/client-portal/internal/config"
	"github.com/arkenix/client-portal/internal/infrastructure/events"
	"github.com/arkenix/client-portal/internal/infrastructure/file"
	"github.com/arkenix/client-portal/internal/infrastructure/repository"
	httpecho "github.com/arkenix/client-portal/internal/interfaces/http/echo"
)

func NewHTTPServer(cfg *config.Config, dbs *Databases, logger *zap.Logger) (*echo.Echo, error) {
	tokens, err := accountapp.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	server.Use(requestLogger(logger))
	server.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "x-client-info", "apikey"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
	}))

	broker := events.NewBroker(logger.Named("events"))
	records := repository.NewRecordRepository(dbs.Gorm)
	pipeline := NewImportPipeline(cfg.Import, dbs, broker, logger)

	addRecord := contactapp.NewAddRecord(records, broker)
	updateRecord := contactapp.NewUpdateRecord(records, broker)
	deleteRecords := contactapp.NewDeleteRecords(records, broker)

	submissions := repository.NewSubmissionRepository(dbs.Gorm)
	login := accountapp.NewLogin(repository.NewAccountRepository(dbs.Gorm), tokens)

	httpecho.RegisterRoutes(server, httpecho.Handlers{
		Functions: httpecho.NewFunctionHandler(pipeline.Commit, addRecord, updateRecord, deleteRecords, logger),
		Auth:      httpecho.NewAuthHandler(login, logger),
		Portal: httpecho.NewPortalHandler(httpecho.PortalUseCases{
			List:      contactapp.NewListRecords(records),
			Add:       addRecord,
			Update:    updateRecord,
			Delete:    deleteRecords,
			Dashboard: contactapp.NewDashboard(records),
			Preview:   pipeline.Preview,
			Commit:    pipeline.Commit,
			History:   pipeline.History,
		}, broker, file.WriteSample, logger),
		Leads: httpecho.NewLeadHandler(leadapp.NewSubmitContact(submissions), leadapp.NewJoinWaitlist(submissions), logger),
	}, httpecho.RouteConfig{Sessions: tokens, FunctionsKey: cfg.Auth.FunctionsKey})

	server.GET("/healthz", func(c echo.Context) error {
		if err := dbs.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server, nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
