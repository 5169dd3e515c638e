package main

import (
	"github.com/quantfold/optionwheel/api"
	"github.com/quantfold/optionwheel/config"
	db "github.com/quantfold/optionwheel/db/sqlc"
	"github.com/quantfold/optionwheel/logging"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		File:     cfg.Logging.File,
		FilePath: cfg.Logging.FilePath,
	})

	conn, err := db.ConnectDB(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	store := db.NewStore(conn)

	server := api.NewServer(cfg, store, logger)
	logger.Info().Str("address", cfg.Server.Address).Msg("starting server")
	if err := server.Start(cfg.Server.Address); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
