package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/plugin/nlu/intent"
	"github.com/moaworks/moa-router/plugin/nlu/router"
	"github.com/moaworks/moa-router/server"
	"github.com/moaworks/moa-router/server/ai"
	apiv1 "github.com/moaworks/moa-router/server/router/api/v1"
	"github.com/moaworks/moa-router/server/service/toolsearch"
	"github.com/moaworks/moa-router/store"
	"github.com/moaworks/moa-router/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "moa-router",
	Short: "Query-intent routing and tool-ranking service for MOA",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("moa")
	viper.AutomaticEnv()
}

func run(ctx context.Context) error {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	level := slog.LevelInfo
	if instanceProfile.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	st := store.New(dbDriver, instanceProfile)
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	analyzer := intent.NewAnalyzer(nil)

	var routerCfg router.Config
	var embedder *ai.Embedder
	var embedClient router.EmbeddingClient
	if instanceProfile.IsAIEnabled() {
		provider, err := ai.NewProvider(&ai.Config{
			BaseURL:        instanceProfile.AIBaseURL,
			APIKey:         instanceProfile.AIAPIKey,
			EmbeddingModel: instanceProfile.AIEmbeddingModel,
			ChatModel:      instanceProfile.AIChatModel,
		})
		if err != nil {
			return err
		}
		routerCfg.Embeddings = provider
		routerCfg.Chat = provider
		embedClient = provider
		embedder = ai.NewEmbedder(provider, st)
	} else {
		slog.Info("AI is disabled, routing runs rule-only")
	}

	decider := router.NewDecider(analyzer, routerCfg)
	search := toolsearch.NewService(st, analyzer, embedClient)
	api := apiv1.NewAPIV1Service(instanceProfile, st, decider, search, embedder)

	if instanceProfile.Mode == "demo" {
		if err := seedDemoCatalog(ctx, st); err != nil {
			slog.Warn("failed to seed demo catalog", "error", err)
		}
	}

	return server.NewServer(instanceProfile, api).Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
