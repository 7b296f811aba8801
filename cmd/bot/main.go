package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/common/logging"
	"github.com/KirkDiggler/scoutmaster/internal/common/uuid"
	"github.com/KirkDiggler/scoutmaster/internal/config"
	gatewayDiscord "github.com/KirkDiggler/scoutmaster/internal/gateway/discord"
	"github.com/KirkDiggler/scoutmaster/internal/handlers/discord"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	usageRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/usage"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"github.com/KirkDiggler/scoutmaster/internal/services/reset"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	usage, err := usageRepo.NewRedis(&usageRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}
	guildConfigs, err := guildConfigRepo.NewRedis(&guildConfigRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	clk := &clock.DefaultClock{}

	quotaSvc, err := quota.New(&quota.Config{
		UsageRepo:           usage,
		SessionRepo:         sessions,
		GuildConfigRepo:     guildConfigs,
		Clock:               clk,
		Location:            cfg.Location(),
		ResetHour:           cfg.ResetHour,
		ResetMinute:         cfg.ResetMinute,
		DefaultSessionLimit: cfg.DefaultSessionLimit,
		DefaultMemberLimit:  cfg.DefaultMemberLimit,
		Logger:              logger,
	})
	if err != nil {
		return err
	}

	msgs, err := messaging.New(&messaging.Config{DefaultImageURL: cfg.DefaultImageURL})
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	gw, err := gatewayDiscord.New(&gatewayDiscord.Config{Session: session, Logger: logger})
	if err != nil {
		return err
	}

	recruitmentSvc, err := recruitment.New(&recruitment.Config{
		SessionRepo:         sessions,
		GuildConfigRepo:     guildConfigs,
		QuotaService:        quotaSvc,
		Messaging:           msgs,
		Gateway:             gw,
		Clock:               clk,
		UUIDGenerator:       uuid.New(),
		PremiumSessionLimit: cfg.PremiumSessionLimit,
		OperationTimeout:    cfg.OperationTimeout,
		Logger:              logger,
	})
	if err != nil {
		return err
	}

	scheduler, err := reset.New(&reset.Config{
		QuotaService:       quotaSvc,
		SessionRepo:        sessions,
		RecruitmentService: recruitmentSvc,
		Concurrency:        cfg.ResetConcurrency,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Session:             session,
		ApplicationID:       cfg.ApplicationID,
		GuildID:             cfg.GuildID,
		RecruitmentService:  recruitmentSvc,
		QuotaService:        quotaSvc,
		GuildConfigRepo:     guildConfigs,
		Messaging:           msgs,
		Clock:               clk,
		PremiumSessionLimit: cfg.PremiumSessionLimit,
		OperationTimeout:    cfg.OperationTimeout,
		Logger:              logger,
	})
	if err != nil {
		return err
	}

	// The reset loop does not depend on the gateway connection
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	if err := bot.Start(); err != nil {
		return err
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancelStart()
	if err := recruitmentSvc.Start(startCtx); err != nil {
		logger.Error("failed to restore session timers", zap.Error(err))
	}
	defer recruitmentSvc.Stop()

	// Wait for interrupt signal to gracefully shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	if err := bot.Stop(); err != nil {
		logger.Warn("error stopping bot", zap.Error(err))
	}

	return nil
}
