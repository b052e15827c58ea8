package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/api"
	"github.com/yuuto7838/adsim/internal/config"
	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/geminiclient"
	"github.com/yuuto7838/adsim/internal/logging"
	"github.com/yuuto7838/adsim/internal/session"
	"github.com/yuuto7838/adsim/internal/storage"
)

func main() {
	envCfg, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	// The config file is optional unless explicitly pointed at: the game
	// runs fine on the built-in channel archetypes and prompts.
	cfg := config.Defaults()
	if _, statErr := os.Stat(envCfg.ConfigPath); statErr == nil {
		cfg, err = config.LoadConfig(envCfg.ConfigPath)
		if err != nil {
			logging.Fatal("Missing or invalid adsim configuration", err, logging.Fields{"config_path": envCfg.ConfigPath})
		}
	} else if os.Getenv(constants.EnvConfigPath) != "" {
		logging.Fatal("Configured adsim config file not found", statErr, logging.Fields{"config_path": envCfg.ConfigPath})
	}
	if envCfg.Addr != "" {
		cfg.ServerAddress = envCfg.Addr
	}

	if err := os.MkdirAll(filepath.Dir(envCfg.DBPath), 0o755); err != nil {
		logging.Fatal("Failed to create data directory", err, logging.Fields{"db_path": envCfg.DBPath})
	}
	db, err := storage.OpenAndMigrate(envCfg.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	mgr := session.NewManager(session.Config{
		Repo: repo,
		NewProvider: func(apiKey string) session.Provider {
			return geminiclient.New(apiKey, geminiclient.WithTemplates(cfg.Templates))
		},
		Profiles: cfg.Profiles,
		RunDelay: cfg.RunDelay,
	})

	// A credential stored by a previous session skips the gate and fetches
	// the first brief right away. A failure here is not fatal; the player
	// lands on the credential view and can retry.
	if err := mgr.Bootstrap(context.Background()); err != nil {
		logging.Error("startup brief generation failed", err, nil)
	}

	handler := api.NewSessionHandler(mgr, repo)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteState, handler.GetState)
		apiRoutes.GET(constants.RouteHistory, handler.GetHistory)
		apiRoutes.GET(constants.RouteArchive, handler.GetArchive)
		apiRoutes.GET(constants.RouteHealthz, api.Healthz)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.POST(constants.RouteCredentials, handler.SubmitCredentials)
		apiRoutes.DELETE(constants.RouteCredentials, handler.ClearCredentials)
		apiRoutes.POST(constants.RouteBriefAccept, handler.AcceptBrief)
		apiRoutes.POST(constants.RouteBriefRegenerate, handler.RegenerateBrief)
		apiRoutes.PUT(constants.RouteAllocation, handler.SetAllocation)
		apiRoutes.POST(constants.RouteRun, handler.Run)
		apiRoutes.POST(constants.RouteNextMonth, handler.NextMonth)
		apiRoutes.POST(constants.RouteQA, handler.AskQuestion)
		apiRoutes.POST(constants.RouteChallengeAnswer, handler.AnswerChallenge)
		apiRoutes.POST(constants.RouteChallengeClose, handler.CloseChallenge)
		apiRoutes.POST(constants.RouteModal, handler.SetModal)
		apiRoutes.DELETE(constants.RouteModal, handler.ClearModal)
	}

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
