package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/quailworks/quail-api/internal/catalogs"
	accountorc "github.com/quailworks/quail-api/internal/orchestrators/account"
	"github.com/quailworks/quail-api/internal/orchestrators/discovery"
	"github.com/quailworks/quail-api/internal/orchestrators/entitlement"
	nestorc "github.com/quailworks/quail-api/internal/orchestrators/nest"
	"github.com/quailworks/quail-api/internal/orchestrators/wallet"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	redisclient "github.com/quailworks/quail-api/internal/redis"
	accountrepo "github.com/quailworks/quail-api/internal/repositories/account"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
	"github.com/quailworks/quail-api/internal/world"
)

// serverConfig is read from the environment at startup
type serverConfig struct {
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	GRPCPort     int           `env:"GRPC_PORT" envDefault:"50051"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"5s"`
	FrameBudget  time.Duration `env:"FRAME_BUDGET" envDefault:"50ms"`
	HomeLocation string        `env:"HOME_LOCATION" envDefault:"meadow_pond"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the game server",
	Long:  `Start the quail-api server: Redis persistence, the player state managers, the world simulation loop, and the gRPC health endpoint.`,
	RunE:  runServer,
}

// managers bundles the state managers the server exposes
type managers struct {
	Entitlements entitlement.Service
	Wallet       wallet.Service
	Accounts     accountorc.Service
	Nests        nestorc.Service
	Discovery    discovery.Service
}

// healthServices lists the per-subsystem health check names
func (m *managers) healthServices() []string {
	return []string{
		"quail.entitlement",
		"quail.wallet",
		"quail.account",
		"quail.nest",
		"quail.discovery",
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	realClock := clock.New()

	redisClient, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			slog.Warn("failed to close redis client", "error", closeErr)
		}
	}()

	locations, talents, upgrades, products := builtinContent()

	mgrs, err := newManagers(realClock, redisClient, locations, talents, upgrades, products)
	if err != nil {
		return err
	}

	coordinator, err := newWorldCoordinator(cfg, realClock, locations)
	if err != nil {
		return fmt.Errorf("failed to create world coordinator: %w", err)
	}

	coordinator.Start()
	defer coordinator.Stop()

	go func() {
		ticker := time.NewTicker(cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				coordinator.Update(ctx)
			}
		}
	}()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range mgrs.healthServices() {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if serveErr := srv.Serve(lis); serveErr != nil {
			errChan <- fmt.Errorf("failed to serve: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// newManagers wires repositories and catalogs into the state managers
func newManagers(
	realClock clock.Clock,
	redisClient redisclient.Client,
	locations catalogs.LocationCatalog,
	talents catalogs.TalentCatalog,
	upgrades catalogs.NestUpgradeCatalog,
	products catalogs.ProductCatalog,
) (*managers, error) {
	playerRepo, err := playerrepo.NewRedis(&playerrepo.RedisConfig{
		Client: redisClient,
		Clock:  realClock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player repository: %w", err)
	}

	acctRepo, err := accountrepo.NewRedis(&accountrepo.RedisConfig{
		Client: redisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account repository: %w", err)
	}

	entitlementSvc, err := entitlement.New(&entitlement.Config{
		AccountRepo: acctRepo,
		Products:    products,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlement manager: %w", err)
	}

	walletSvc, err := wallet.New(&wallet.Config{
		PlayerRepo:   playerRepo,
		Entitlements: entitlementSvc,
		Products:     products,
		Clock:        realClock,
		IDGenerator:  idgen.NewUUID("tx"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet manager: %w", err)
	}

	accountSvc, err := accountorc.New(&accountorc.Config{
		AccountRepo: acctRepo,
		PlayerRepo:  playerRepo,
		Talents:     talents,
		Clock:       realClock,
		IDGenerator: idgen.NewUUID("player"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account manager: %w", err)
	}

	nestSvc, err := nestorc.New(&nestorc.Config{
		PlayerRepo:  playerRepo,
		Upgrades:    upgrades,
		Clock:       realClock,
		IDGenerator: idgen.NewUUID("nest"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create nest manager: %w", err)
	}

	discoverySvc, err := discovery.New(&discovery.Config{
		PlayerRepo:  playerRepo,
		Locations:   locations,
		Clock:       realClock,
		IDGenerator: idgen.NewUUID("disc"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery manager: %w", err)
	}

	return &managers{
		Entitlements: entitlementSvc,
		Wallet:       walletSvc,
		Accounts:     accountSvc,
		Nests:        nestSvc,
		Discovery:    discoverySvc,
	}, nil
}

// newWorldCoordinator wires the simulation systems onto their buckets
func newWorldCoordinator(cfg serverConfig, realClock clock.Clock, locations catalogs.LocationCatalog) (*world.OptimizedCoordinator, error) {
	monitor := world.NewFrameBudgetMonitor(cfg.FrameBudget, world.DefaultFrameWindow)

	coordinator, err := world.NewOptimizedCoordinator(&world.OptimizedConfig{
		Clock:     realClock,
		Locations: locations,
		Monitor:   monitor,
		Locate:    func() string { return cfg.HomeLocation },
	})
	if err != nil {
		return nil, err
	}

	if err := coordinator.RegisterSpatial(world.BucketFast, world.NewResourceRespawnSystem(0)); err != nil {
		return nil, err
	}
	if err := coordinator.RegisterSpatial(world.BucketMedium, world.NewWeatherSystem()); err != nil {
		return nil, err
	}
	if err := coordinator.RegisterSpatial(world.BucketMedium, world.NewPatrolManager(0)); err != nil {
		return nil, err
	}
	if err := coordinator.RegisterSpatial(world.BucketMedium, world.NewNPCBehaviorSystem()); err != nil {
		return nil, err
	}
	if err := coordinator.Register(world.BucketSlow, world.NewSeasonSystem()); err != nil {
		return nil, err
	}
	return coordinator, nil
}

func logFunc(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
	switch level {
	case grpc_logging.LevelDebug:
		slog.Debug(msg, fields...)
	case grpc_logging.LevelWarn:
		slog.Warn(msg, fields...)
	case grpc_logging.LevelError:
		slog.Error(msg, fields...)
	default:
		slog.Info(msg, fields...)
	}
}
