package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/jobcull-api/configs"
	"github.com/fuzumoe/jobcull-api/internal/browser"
	"github.com/fuzumoe/jobcull-api/internal/detector"
	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/handler"
	"github.com/fuzumoe/jobcull-api/internal/pipeline"
	"github.com/fuzumoe/jobcull-api/internal/resolver"
	"github.com/fuzumoe/jobcull-api/internal/runner"
	"github.com/fuzumoe/jobcull-api/internal/server"
	"github.com/fuzumoe/jobcull-api/internal/service"
)

// hookable function for dependency injection in tests
var LoadConfig = configs.Load

// Run loads config, wires the pipeline, and serves the API.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}

	client := fetch.NewClient(fetch.Options{
		UserAgent:         cfg.UserAgent,
		RespectRobots:     cfg.RespectRobots,
		RequestsPerSecond: cfg.FetchRPS,
	})
	renderer := browser.New(
		browser.WithChromeBin(cfg.ChromeBin),
		browser.WithSettle(cfg.BrowserSettle),
	)

	checker := pipeline.New(
		resolver.New(client),
		detector.DefaultRegistry(client, renderer),
		detector.NewStatusCode(client),
		detector.NewGenericRequestText(client),
		detector.NewBrowserText(renderer),
	)

	linkSvc := service.NewLinkService(checker, runner.New(checker, cfg.MaxWorkers), cfg.CheckTimeout)
	healthSvc := service.NewHealthService(cfg.ServiceName, renderer.Available)

	gin.SetMode(cfg.ServerMode)
	engine := gin.New()
	server.RegisterRoutes(engine, []server.RouteRegistrar{
		handler.NewHealthHandler(healthSvc),
		handler.NewLinkHandler(linkSvc),
	})

	addr := cfg.ServerHost + ":" + cfg.ServerPort
	if err := engine.Run(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
