package main

import (
	"context"
	"os"
	"os/signal"
	"srgbot/internal/adapters/analytics"
	"srgbot/internal/adapters/file"
	"srgbot/internal/adapters/handler"
	"srgbot/internal/adapters/sender"
	"srgbot/internal/adapters/storage"
	"srgbot/internal/config"
	"srgbot/internal/core/domain/command"
	"srgbot/internal/core/port"
	"srgbot/internal/core/service"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting srgbot...")

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	store, err := artifactStore(ctx, cfg)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing artifact store")
	}

	gateway := analytics.NewHTTP(cfg.Analytics.BaseURL, cfg.Analytics.APIKey, cfg.Analytics.Timeout, store)
	if err := gateway.Connect(ctx); err != nil {
		log.Panic().Err(err).Msg("analytics backend unreachable")
	}

	responder := sender.NewDiscord(session)
	pipeline := command.NewPipeline(responder,
		service.NewArtifactManager(store),
		service.NewAuthorizer(responder, cfg.Bot.AdminIDs),
		command.Style{Color: cfg.Bot.EmbedColor, Footer: cfg.Bot.Footer})

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewWordCloud(pipeline, gateway, "wordcloud"))
	commandRegistry.Register(command.NewTop(pipeline, gateway, "top"))
	commandRegistry.Register(command.NewExport(pipeline, gateway, "export"))
	commandRegistry.Register(command.NewProfile(pipeline, gateway, "profile"))
	commandRegistry.Register(command.NewTopDate(pipeline, gateway, "topdate"))
	commandRegistry.Register(command.NewHelp(pipeline, commandRegistry, "help"))

	commandHandler := handler.NewCommand(ctx, commandRegistry, cfg.Bot.Workers)

	session.AddHandler(commandHandler.Handle)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected to discord")

		err := handler.RegisterCommands(s, r.User.ID, cfg.Discord.GuildID, commandRegistry.Commands())
		if err != nil {
			log.Error().Err(err).Msg("could not register commands")
		}
	})

	if err := session.Open(); err != nil {
		log.Panic().Err(err).Msg("failed opening discord session")
	}

	log.Info().Msg("bot listening")
	<-ctx.Done()

	// stop receiving interactions before draining the ones already running
	if err := session.Close(); err != nil {
		log.Error().Err(err).Msg("failed closing discord session")
	}

	log.Info().Dur("timeout", cfg.Bot.ShutdownTimeout).Msg("shutting down, waiting for running commands")
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Bot.ShutdownTimeout)
	defer cancelDrain()

	commandHandler.Stop(drainCtx)
}

func artifactStore(ctx context.Context, cfg *config.Config) (port.ArtifactStore, error) {
	if cfg.Artifacts.Backend == "minio" {
		return storage.NewMinIO(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			Region:    cfg.MinIO.Region,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
		})
	}

	return file.NewTempStore(cfg.Artifacts.Dir)
}
