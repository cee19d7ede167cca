package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/bootstrap"
)

func main() {
	bootstrap.SetupLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 3 {
		log.Fatal().Msg("usage: worker export <datasetSource> [outDir] [mode] [iso3] | worker metrics <datasetSource>")
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = RunExport(os.Args[2:])
	case "metrics":
		err = RunMetrics(os.Args[2:])
	default:
		log.Fatal().Str("command", os.Args[1]).Msg("unknown command")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}
