// Package app contains the application setup for the pharmacy service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/DayanAguilar/pharmacy-api/internal/config"
	productservice "github.com/DayanAguilar/pharmacy-api/internal/product/service"
	productstore "github.com/DayanAguilar/pharmacy-api/internal/product/store"
	productrest "github.com/DayanAguilar/pharmacy-api/internal/product/transport/rest"
	sellservice "github.com/DayanAguilar/pharmacy-api/internal/sell/service"
	sellstore "github.com/DayanAguilar/pharmacy-api/internal/sell/store"
	sellrest "github.com/DayanAguilar/pharmacy-api/internal/sell/transport/rest"
	"github.com/DayanAguilar/pharmacy-api/pkg/messaging"
	"github.com/DayanAguilar/pharmacy-api/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService productservice.ProductService
	SellService    sellservice.SellService
	Logger         *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	pStore := productstore.NewPgStore(dbPool)
	pService := productservice.NewService(pStore)
	sService := sellservice.NewService(
		sellstore.NewPgStore(dbPool),
		pStore,
		publisher,
		cfg.Alerts.StockThreshold,
		cfg.Report.Source,
	)

	return &Dependencies{
		ProductService: pService,
		SellService:    sService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the pharmacy application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the pharmacy application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := productrest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
	sellHandler := sellrest.NewHandler(deps.SellService, deps.Logger)
	sellHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the pharmacy application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
