package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tweakcn/tweakcn/backend-go/internal/asset"
	"github.com/tweakcn/tweakcn/backend-go/internal/board"
	"github.com/tweakcn/tweakcn/backend-go/internal/collab"
	"github.com/tweakcn/tweakcn/backend-go/internal/config"
	mw "github.com/tweakcn/tweakcn/backend-go/internal/middleware"
	"github.com/tweakcn/tweakcn/backend-go/internal/store"
	"github.com/tweakcn/tweakcn/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	settings := cfg.CanvasSettings()

	hub := collab.NewHub(collab.HubOptions{
		Load:         st.Load,
		Save:         st.Save,
		NotFound:     func(err error) bool { return errors.Is(err, store.ErrNotFound) },
		SaveInterval: cfg.SaveInterval,
		Settings:     settings,
	})
	go hub.Run()

	boardService := board.NewService(st, settings, board.WithLiveCheck(hub.Active))
	boardHandler := board.NewHandler(boardService)

	imageHandler, err := asset.NewHandler(cfg.ImageDir, "/images/")
	if err != nil {
		slog.Error("open image dir", "error", err)
		os.Exit(1)
	}

	origins := cfg.Origins()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.Identity)

	r.HandleFunc("/health", board.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	boardHandler.Routes(api)

	// Avatar images
	api.HandleFunc("/images", imageHandler.Upload).Methods("POST")
	r.PathPrefix("/images/").Handler(imageHandler.Serve()).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/canvas/{canvasId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		// CORS wraps the router so preflights reach it before method matching.
		Handler:      mw.CORS(origins)(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty canvases
		slog.Info("saving all canvases...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		slog.Info("using postgres store")
		return store.OpenPostgres(ctx, cfg.DatabaseURL)
	}
	slog.Info("using sqlite store", "path", cfg.SQLitePath)
	return store.OpenSQLite(cfg.SQLitePath)
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, origins []string) {
	canvasID := mux.Vars(r)["canvasId"]
	if err := typeid.Validate(canvasID, typeid.PrefixCanvas); err != nil {
		http.Error(w, "invalid canvas id", http.StatusBadRequest)
		return
	}

	// Browsers cannot set headers on the upgrade request, so the query wins.
	userID := r.URL.Query().Get("user")
	if userID == "" {
		userID = mw.UserIDFromContext(r.Context())
	}
	displayName := r.URL.Query().Get("name")
	if displayName == "" {
		displayName = "Anonymous"
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, userID, displayName, canvasID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes since websocket.AcceptOptions matches hosts.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		out = append(out, o)
	}
	return out
}
