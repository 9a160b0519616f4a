package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seitarof/defunc/internal/cli"
)

var version = "dev"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := cli.NewCommand(version).Execute(); err != nil {
		log.Fatal().Err(err).Msg("defunc failed")
	}
}
