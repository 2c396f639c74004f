package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-irc-bot/internal/bot"
	"github.com/MKhiriev/go-irc-bot/internal/config"
	"github.com/MKhiriev/go-irc-bot/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-irc-bot")

	builder, err := config.LoadBuilder(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "N/A" && builder.Version() == config.DefaultVersion {
		builder.SetVersion(fmt.Sprintf("%s %s", config.DefaultName, buildVersion))
	}

	cfg, err := builder.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ircBot, err := bot.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bot")
	}

	if err = ircBot.Connect(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error connecting to server")
	}

	if err = ircBot.Wait(); err != nil {
		log.Error().Err(err).Msg("connection ended with error")
		ircBot.Close()
		os.Exit(1)
	}
	ircBot.Close()
	log.Info().Msg("bot stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
