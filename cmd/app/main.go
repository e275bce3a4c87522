package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stakeburn-backend/internal/common/config"
	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/common/middleware"
	campaignhttp "stakeburn-backend/internal/features/campaign/delivery/http"
	"stakeburn-backend/internal/features/campaign/models"
	"stakeburn-backend/internal/features/campaign/repository"
	redisrepo "stakeburn-backend/internal/features/campaign/repository/redis"
	campaignservice "stakeburn-backend/internal/features/campaign/service"
	"stakeburn-backend/internal/platform/ethereum"
	redisplatform "stakeburn-backend/internal/platform/redis"
	"stakeburn-backend/internal/platform/token"
)

func main() {
	cfg := config.Load()

	logger.Init("stakeburn-backend", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Event mirror is optional: without Redis the engine still runs, it
	// just stops projecting state for the off-chain backend.
	var mirror repository.CampaignMirror
	if cfg.Redis.Host != "" {
		rdb, err := redisplatform.Open(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		mirror = redisrepo.NewCampaignMirror(rdb)
		logger.Info().Msg("Redis mirror initialized")
	} else {
		logger.Warn().Msg("REDIS_HOST not set, event mirroring disabled")
	}

	deps := campaignservice.Deps{
		OwnerWallet:   cfg.Engine.OwnerWallet,
		CustodyWallet: cfg.Engine.CustodyWallet,
		MinLeadTime:   cfg.Engine.MinLeadTime,
		Mirror:        mirror,
	}

	// Token collaborator: the ERC20 adapter when an RPC endpoint is
	// configured, the in-memory ledger otherwise.
	if cfg.Ethereum.RPCURL != "" {
		eth, err := ethereum.NewClient(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Ethereum")
		}
		defer eth.Close()

		erc20, err := ethereum.NewERC20(eth, cfg.Ethereum.TokenAddress)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to bind staking token")
		}
		rng, err := ethereum.NewBlockhashSource(ctx, eth)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to snapshot chain head")
		}

		deps.Token = erc20
		deps.Resolver = ethereum.NewResolver(eth)
		deps.Randomness = rng
		logger.Info().Str("token", cfg.Ethereum.TokenAddress).Msg("Ethereum token adapter initialized")
	} else {
		mem := token.NewMemoryToken("memory:staking")
		deps.Token = mem
		deps.Resolver = token.NewMemoryResolver(mem)
		logger.Warn().Msg("ETH_RPC_URL not set, using in-memory token ledger")
	}

	engine := campaignservice.NewCampaignEngine(deps)

	// Bootstrap admins from config so the owner is not the only identity
	// able to operate campaigns after a restart.
	for _, wallet := range cfg.Engine.AdminWallets {
		if err := engine.GrantRole(ctx, cfg.Engine.OwnerWallet, wallet, models.CapabilityAdmin); err != nil {
			logger.Error().Err(err).Str("wallet", wallet).Msg("Failed to bootstrap admin")
		}
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID", middleware.CallerHeader}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.CallerIdentity(false))
	campaignhttp.NewCampaignHandler(engine).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}
	logger.Info().Msg("Server exited")
}
