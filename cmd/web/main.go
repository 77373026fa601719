package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/skip2/go-qrcode"
	"github.com/tomz197/cookierun/internal/config"
	"github.com/tomz197/cookierun/internal/highscore"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type server struct {
	sshHost string
	sshPort string
	store   highscore.Store
	log     *log.Logger
	qr      []byte
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("env", "err", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	srv, err := newServer(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SSH_DISPLAY_PORT", "2222"),
		config.GetEnv("COOKIE_SCORES", "sqlite:///app/data/scores.db"),
		logger,
	)
	if err != nil {
		logger.Fatal("setup", "err", err)
	}
	defer srv.store.Close()

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newServer(sshHost, sshPort, scores string, logger *log.Logger) (*server, error) {
	store, err := highscore.Open(scores)
	if err != nil {
		return nil, err
	}
	s := &server{sshHost: sshHost, sshPort: sshPort, store: store, log: logger}

	// The QR code is the same for every visitor
	s.qr, err = qrcode.Encode(s.sshURL(), qrcode.Medium, 256)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("qr code: %w", err)
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /qr.png", s.handleQR)
	mux.HandleFunc("GET /api/best", s.handleBest)
	return mux
}

func (s *server) sshCommand() string {
	if s.sshPort == "" || s.sshPort == "22" {
		return "ssh " + s.sshHost
	}
	return fmt.Sprintf("ssh -p %s %s", s.sshPort, s.sshHost)
}

func (s *server) sshURL() string {
	if s.sshPort == "" || s.sshPort == "22" {
		return "ssh://" + s.sshHost
	}
	return "ssh://" + net.JoinHostPort(s.sshHost, s.sshPort)
}

// best reads the stored best score; a missing or broken value reads as 0.
func (s *server) best(r *http.Request) int {
	best, err := s.store.Load(r.Context())
	if err != nil {
		if !errors.Is(err, highscore.ErrNotFound) {
			s.log.Warn("load best score", "err", err)
		}
		return 0
	}
	return best
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SSHCommand string
		Best       int
	}{s.sshCommand(), s.best(r)}
	if err := page.Execute(w, data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *server) handleQR(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(s.qr)
}

type bestResponse struct {
	Key  string `json:"key"`
	Best int    `json:"best"`
}

func (s *server) handleBest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bestResponse{Key: highscore.Key, Best: s.best(r)})
}
