package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/cookierun/internal/audio"
	"github.com/tomz197/cookierun/internal/config"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/highscore"
	"github.com/tomz197/cookierun/internal/loop"
	"github.com/tomz197/cookierun/internal/tcellui"
	"golang.org/x/term"
)

const defaultScores = "cookierun.scores"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}

	ui := flag.String("ui", config.GetEnv("COOKIE_UI", "ansi"), "terminal backend: ansi or tcell")
	scores := flag.String("scores", config.GetEnv("COOKIE_SCORES", defaultScores), "best score store (PATH, file://PATH, sqlite://PATH or memory)")
	tuning := flag.String("tuning", config.GetEnv("COOKIE_TUNING", ""), "YAML tuning file")
	sound := flag.Bool("sound", config.GetEnvBool("COOKIE_SOUND", false), "play sound cues")
	logFile := flag.String("log", config.GetEnv("COOKIE_LOG", ""), "write logs to this file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger, closeLog, err := newLogger(*logFile, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(logger, *ui, *scores, *tuning, *sound); err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger logs to a file when one is given; the terminal belongs to the game.
func newLogger(path string, debug bool) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, TimeFormat: time.DateTime})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { _ = f.Close() }, nil
}

func run(logger *log.Logger, ui, scores, tuning string, sound bool) error {
	cfg, err := config.LoadTuning(tuning)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := highscore.Open(scores)
	if err != nil {
		return err
	}
	board := highscore.NewBoard(ctx, store, logger.WithPrefix("scores"))
	defer board.Close()

	eng, err := engine.New(cfg,
		engine.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		engine.WithLogger(logger.WithPrefix("engine")),
		engine.WithRecorder(board),
	)
	if err != nil {
		return err
	}

	opts := loop.Options{Logger: logger.WithPrefix("loop")}
	if sound {
		player := audio.Start(0, logger)
		defer player.Close()
		opts.OnCollision = player.OnCollision
	}

	switch ui {
	case "tcell":
		screen, err := tcellui.New()
		if err != nil {
			return fmt.Errorf("tcell: %w", err)
		}
		defer screen.Close()
		return loop.Run(ctx, eng, screen, opts)
	case "ansi", "":
		return runANSI(ctx, eng, opts)
	default:
		return fmt.Errorf("unknown ui %q", ui)
	}
}

func runANSI(ctx context.Context, eng *engine.Engine, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	t := loop.NewTerminal(os.Stdin, os.Stdout, loop.TerminalOptions{})
	t.Setup()
	defer t.Close()
	return loop.Run(ctx, eng, t, opts)
}
