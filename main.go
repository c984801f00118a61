// Command shoko-rocket starts the Shoko Rocket game server.
//
// The `serve` subcommand runs the HTTP server exposing the REST API,
// the WebSocket realtime feed, and an /mcp HTTP endpoint; with
// --stdio-mcp it additionally serves MCP over stdio against the same
// API. The `map` subcommands work with level files on disk.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/shoko-rocket/api"
	"github.com/wricardo/shoko-rocket/game/engine"
	"github.com/wricardo/shoko-rocket/game/mapfile"
	"github.com/wricardo/shoko-rocket/game/service"
	"github.com/wricardo/shoko-rocket/game/session"
	"github.com/wricardo/shoko-rocket/transport/mcp"
	"github.com/wricardo/shoko-rocket/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Shoko Rocket Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	cmd := &cli.Command{
		Name:    "shoko-rocket",
		Usage:   AppName,
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(),
			mapCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// setupLogging configures the global zerolog logger with a console
// writer and the requested level.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server with REST API, WebSocket feed, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "localhost:8080",
				Usage:   "HTTP listen address",
				Sources: cli.EnvVars("ADDR"),
			},
			&cli.StringFlag{
				Name:    "levels-dir",
				Usage:   "directory with extra level sources to load alongside the builtins",
				Sources: cli.EnvVars("LEVELS_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "stdio-mcp",
				Usage: "also serve MCP over stdio, proxying to the HTTP API",
			},
		},
		Action: runServe,
	}
}

// runServe wires the services and runs the HTTP server until a
// shutdown signal arrives.
func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.String("log-level"))

	gameService, sessionManager, err := initializeServices(cmd.String("levels-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// WebSocket hub plus the 60fps run loop that feeds it
	hub := websocket.NewHub()
	go hub.Run()
	runner := websocket.NewRunner(sessionManager, hub)
	go runner.Run(runCtx)

	go sessionCleanupRoutine(runCtx, sessionManager)

	addr := cmd.String("addr")
	apiServer := api.NewServer(gameService, hub)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	if cmd.Bool("stdio-mcp") {
		// Block on stdio until the MCP client disconnects, then fall
		// through to the normal shutdown path.
		log.Info().Msg("Serving MCP over stdio")
		if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
			log.Error().Err(err).Msg("MCP stdio server exited")
		}
	} else {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("Shutting down")
		case err := <-serverErr:
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Server stopped")
	return nil
}

// initializeServices wires the level library, session manager, and
// game service.
func initializeServices(levelsDir string) (service.GameService, *session.Manager, error) {
	levels, err := mapfile.NewLibrary(levelsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load levels: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, levels)

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not
// been accessed within the retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := manager.CleanupExpiredSessions(24 * time.Hour)
			if removed > 0 {
				log.Info().Int("removed", removed).Msg("Cleaned up expired sessions")
			}
		}
	}
}

func mapCommand() *cli.Command {
	return &cli.Command{
		Name:  "map",
		Usage: "Work with level files",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate an ASCII map source",
				ArgsUsage: "<file>",
				Action:    runMapCheck,
			},
			{
				Name:      "pack",
				Usage:     "Pack an ASCII map source into its 199 byte form",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output file (default: stdout)",
					},
				},
				Action: runMapPack,
			},
			{
				Name:      "info",
				Usage:     "Print the name, author, and entity summary of a map",
				ArgsUsage: "<file>",
				Action:    runMapInfo,
			},
		},
	}
}

func mapFileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one map file argument")
	}
	return cmd.Args().First(), nil
}

// runMapCheck packs the source and loads the result into a world, so
// both the art and the packed form are known good.
func runMapCheck(ctx context.Context, cmd *cli.Command) error {
	file, err := mapFileArg(cmd)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	packed, err := mapfile.EncodeSource(src)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	world, err := engine.LoadWorld(packed)
	if err != nil {
		return fmt.Errorf("%s: packed map does not load: %w", file, err)
	}

	name, author, _, err := mapfile.Decode(packed)
	if err != nil {
		return fmt.Errorf("%s: packed map does not decode: %w", file, err)
	}

	fmt.Printf("OK: %q by %s (%d mice, %d cats)\n",
		name, author, len(world.Mice()), len(world.Cats()))
	return nil
}

func runMapPack(ctx context.Context, cmd *cli.Command) error {
	file, err := mapFileArg(cmd)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	packed, err := mapfile.EncodeSource(src)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if out := cmd.String("out"); out != "" {
		return os.WriteFile(out, packed, 0644)
	}

	_, err = os.Stdout.Write(packed)
	return err
}

// runMapInfo accepts either an ASCII source or an already packed map.
func runMapInfo(ctx context.Context, cmd *cli.Command) error {
	file, err := mapFileArg(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	name, author, art, err := mapfile.Decode(data)
	if err != nil {
		name, author, art, err = mapfile.ParseSource(data)
		if err != nil {
			return fmt.Errorf("%s: not a packed map or a map source: %w", file, err)
		}
	}

	joined := strings.Join(art, "\n")
	fmt.Printf("Name:    %s\n", name)
	fmt.Printf("Author:  %s\n", author)
	fmt.Printf("Mice:    %d\n", strings.Count(joined, "M"))
	fmt.Printf("Cats:    %d\n", strings.Count(joined, "C"))
	fmt.Printf("Rockets: %d\n", strings.Count(joined, "R"))
	fmt.Printf("Holes:   %d\n", strings.Count(joined, "H"))
	fmt.Printf("Arrows:  %d\n", strings.Count(joined, "A"))
	return nil
}
