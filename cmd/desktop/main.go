package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/cookierun/internal/config"
	"github.com/tomz197/cookierun/internal/desktop"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/highscore"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "desktop"})
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("env", "err", err)
	}

	scores := flag.String("scores", config.GetEnv("COOKIE_SCORES", "cookierun.scores"), "best score store (PATH, file://PATH, sqlite://PATH or memory)")
	tuning := flag.String("tuning", config.GetEnv("COOKIE_TUNING", ""), "YAML tuning file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadTuning(*tuning)
	if err != nil {
		logger.Fatal("tuning", "err", err)
	}

	store, err := highscore.Open(*scores)
	if err != nil {
		logger.Fatal("score store", "err", err)
	}
	board := highscore.NewBoard(context.Background(), store, logger.WithPrefix("scores"))
	defer board.Close()

	eng, err := engine.New(cfg,
		engine.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		engine.WithLogger(logger.WithPrefix("engine")),
		engine.WithRecorder(board),
	)
	if err != nil {
		logger.Fatal("engine", "err", err)
	}

	game := desktop.NewGame(eng, desktop.Options{Logger: logger})
	if err := desktop.Run(game); err != nil {
		logger.Error("game error", "err", err)
	}
}
