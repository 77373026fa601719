package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/cookierun/internal/config"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/highscore"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScores      = "sqlite:///app/data/scores.db"

	// Players get the shutdown notice, then the server waits this long at most
	shutdownGrace = 15 * time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("env", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})
	if config.GetEnvBool("COOKIE_DEBUG", false) {
		logger.SetLevel(log.DebugLevel)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scores := config.GetEnv("COOKIE_SCORES", defaultScores)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scores", scores)

	cfg, err := config.LoadTuning(config.GetEnv("COOKIE_TUNING", ""))
	if err != nil {
		logger.Fatal("tuning", "err", err)
	}

	store, err := highscore.Open(scores)
	if err != nil {
		logger.Fatal("score store", "err", err)
	}
	// One board shared by every session
	board := highscore.NewBoard(context.Background(), store, logger.WithPrefix("scores"))
	defer board.Close()

	gs := &games{
		cfg:      cfg,
		board:    board,
		log:      logger,
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gs.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", gs.active.Load())
	gs.stop(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// games runs one independent engine per SSH session.
type games struct {
	cfg      engine.Config
	board    *highscore.Board
	log      *log.Logger
	wg       sync.WaitGroup
	active   atomic.Int64
	shutdown chan struct{}
	stopOnce sync.Once
}

// stop shows the shutdown notice to every player and waits for their
// sessions to end, at most for grace.
func (g *games) stop(grace time.Duration) {
	g.stopOnce.Do(func() { close(g.shutdown) })

	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		g.log.Info("all sessions ended")
	case <-time.After(grace):
		g.log.Warn("sessions still open after grace period", "players", g.active.Load())
	}
}

// middleware handles SSH sessions and runs the game.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		select {
		case <-g.shutdown:
			fmt.Fprintln(sess, "Server is shutting down. Please reconnect in a moment.")
			return
		default:
		}

		g.wg.Add(1)
		defer g.wg.Done()
		players := g.active.Add(1)
		defer g.active.Add(-1)

		logger := g.log.With("user", sess.User())
		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height), "players", players)

		if err := g.play(sess, pty, winCh, logger); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

func (g *games) play(sess ssh.Session, pty ssh.Pty, winCh <-chan ssh.Window, logger *log.Logger) error {
	eng, err := engine.New(g.cfg,
		engine.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		engine.WithLogger(logger.WithPrefix("engine")),
		engine.WithRecorder(g.board),
	)
	if err != nil {
		return err
	}

	width, height := pty.Window.Width, pty.Window.Height
	t := loop.NewTerminal(sess, sess, loop.TerminalOptions{
		TermSizeFunc: func() (int, int, error) { return width, height, nil },
		Subtitle:     "~ cookie catching over SSH ~",
	})

	// Window changes reach the UI through the event stream
	go func() {
		for win := range winCh {
			t.Stream().Push(input.Resize(win.Width, win.Height))
		}
	}()

	t.Setup()
	defer t.Close()

	return loop.Run(sess.Context(), eng, t, loop.Options{
		Shutdown:   g.shutdown,
		Inactivity: true,
		Logger:     logger,
	})
}
