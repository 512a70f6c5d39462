package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/appshell/internal/api/http"
	"github.com/GriffinCanCode/appshell/internal/api/middleware"
	"github.com/GriffinCanCode/appshell/internal/api/ws"
	"github.com/GriffinCanCode/appshell/internal/domain/catalog"
	"github.com/GriffinCanCode/appshell/internal/domain/focus"
	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/domain/media"
	"github.com/GriffinCanCode/appshell/internal/domain/shell"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/fetch"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/appshell/internal/platform/headless"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
)

// Server wraps the control API and the shell it drives
type Server struct {
	router   *gin.Engine
	shell    *shell.Shell
	catalog  *catalog.Catalog
	hub      *ws.Hub
	tracer   *tracing.Tracer
	fetcher  *fetch.Client
	surface  *headless.Surface
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	exit     chan struct{}
	exitOnce sync.Once

	mu   sync.Mutex
	http *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, err
	}

	capability, err := cfg.Shell.ResolveCapability()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve capability: %w", err)
	}

	logger.Info("Initializing shell host",
		zap.String("port", cfg.Server.Port),
		zap.Stringer("capability", capability),
		zap.String("static_files_path", cfg.Shell.StaticFilesPath),
	)

	corsCfg := middleware.CORSConfig{Origins: cfg.CORS.Origins, MaxAge: cfg.CORS.MaxAge}
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("shell", logger.Logger)

	fetcher := fetch.NewClient(fetch.Options{
		Timeout: cfg.Fonts.Timeout,
		Retries: cfg.Fonts.Retries,
		RPS:     cfg.Fonts.FetchRPS,
	})
	source := fonts.Router{Remote: fetcher, Local: fonts.FileSource{}}

	preloader := fonts.NewPreloader(capability, fonts.Options{
		Registry:    fonts.NewRegistry(),
		Source:      source,
		Backend:     headless.NewFontBackend(source),
		Concurrency: cfg.Fonts.Concurrency,
		Timeout:     cfg.Fonts.Timeout,
		Logger:      logger,
		Metrics:     metrics,
	})

	pipeline := headless.NewPipeline(logger)
	player := media.Resolve(capability, media.Factories{
		types.CapabilityWeb: func() media.Player {
			return media.NewWebPlayer(pipeline, media.WebOptions{
				TextureMode: cfg.Media.TextureMode,
				Logger:      logger,
				Metrics:     metrics,
			})
		},
		types.CapabilityNative: headless.MediaFactory{}.Create,
	})

	surface := headless.NewSurface(map[string]any{
		focus.ClearColorOption: cfg.Shell.ClearColor,
	})

	s := &Server{
		surface: surface,
		fetcher: fetcher,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		exit:    make(chan struct{}),
	}

	s.shell = shell.New(shell.Options{
		Capability:          capability,
		StaticFilesPath:     cfg.Shell.StaticFilesPath,
		DefaultFontFace:     cfg.Shell.DefaultFontFace,
		UseImageServer:      cfg.Shell.UseImageServer(),
		SkipRenderToTexture: cfg.Media.SkipRenderToTexture,
		Container:           headless.NewContainer(),
		Surface:             surface,
		Preloader:           preloader,
		Player:              player,
		OnExit:              s.requestExit,
		Logger:              logger,
		Metrics:             metrics,
	})

	s.shell.Subscribe(newLoadTracer(tracer).observe)

	s.catalog = catalog.New()
	seeder := catalog.NewSeeder(s.catalog, cfg.Catalog.AppsDir, cfg.Catalog.Pattern, logger)
	if _, _, err := seeder.Seed(context.Background()); err != nil {
		logger.Warn("Failed to seed hosted apps", zap.Error(err))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(s.shell, s.catalog, fetcher, metrics, logger)
	handlers.Register(router)

	s.hub = ws.NewHub(s.shell, logger)
	router.GET("/stream", s.hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.router = router
	s.shell.Activate()

	logger.Info("Shell host initialized",
		zap.Int("apps", s.catalog.Len()),
		zap.String("player", string(player.Kind())),
	)
	return s, nil
}

// Router returns the gin engine serving the control API
func (s *Server) Router() *gin.Engine { return s.router }

// Shell returns the hosted shell
func (s *Server) Shell() *shell.Shell { return s.shell }

// Catalog returns the hosted application catalog
func (s *Server) Catalog() *catalog.Catalog { return s.catalog }

// Surface returns the render surface the focus bridge drives
func (s *Server) Surface() *headless.Surface { return s.surface }

// Done is closed when a hosted back action asks the host to exit
func (s *Server) Done() <-chan struct{} { return s.exit }

func (s *Server) requestExit() {
	s.exitOnce.Do(func() {
		s.logger.Info("Exit requested by shell")
		close(s.exit)
	})
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
}

// Run serves the control API until Shutdown is called
func (s *Server) Run() error {
	addr := s.Addr()
	srv := &http.Server{Addr: addr, Handler: s.router}

	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the hosted app, detaches media and drains the control API
func (s *Server) Shutdown(ctx context.Context) error {
	s.shell.Stop()
	s.shell.Deactivate()
	s.hub.Close()

	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	s.tracer.Close()
	_ = s.logger.Sync()
	return err
}
