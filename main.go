// Command rush-hour-solver solves Rush Hour sliding-block puzzles.
//
// It supports three modes:
//  1. "solve" – solves one puzzle from a file or inline vehicle descriptors
//  2. "server" – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the puzzle and archive directories, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/JaredCorduan/rush-hour-solver/api"
	"github.com/JaredCorduan/rush-hour-solver/game/archive"
	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/puzzle"
	"github.com/JaredCorduan/rush-hour-solver/game/service"
	"github.com/JaredCorduan/rush-hour-solver/game/solver"
	"github.com/JaredCorduan/rush-hour-solver/transport/mcp"
	"github.com/JaredCorduan/rush-hour-solver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Rush Hour Solver"
)

// getPuzzleDirDefault returns the default puzzle directory.
// It first honors the PUZZLE_DIR environment variable, then falls back to "puzzles".
func getPuzzleDirDefault() string {
	if puzzleDir := os.Getenv("PUZZLE_DIR"); puzzleDir != "" {
		return puzzleDir
	}
	return "puzzles"
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "rush-hour-solver",
		Usage:   "solve Rush Hour sliding-block puzzles",
		Version: Version,
		// Inline vehicle descriptors are comma-separated ("R,hcar,1,3"), so
		// repeated --car values must not be split on commas.
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "solve one puzzle and print the shortest move sequence",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "puzzle",
						Usage: "puzzle name (from the puzzle directory) or path to a puzzle file",
					},
					&cli.StringFlag{
						Name:  "puzzle-dir",
						Value: getPuzzleDirDefault(),
						Usage: "directory containing puzzle definitions",
					},
					&cli.StringSliceFlag{
						Name:  "car",
						Usage: "inline vehicle descriptor \"name,model,x,y\" (repeatable; overrides --puzzle)",
					},
					&cli.StringFlag{
						Name:  "player-car",
						Value: "R",
						Usage: "name of the player vehicle for inline descriptors",
					},
					&cli.IntFlag{
						Name:  "max-nodes",
						Usage: "abort after discovering this many board states (0 = no limit)",
					},
					&cli.BoolFlag{
						Name:  "display",
						Usage: "render the board before and after solving",
					},
				},
				Action: runSolve,
			},
			{
				Name:  "server",
				Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
				Flags: append(serverFlags(),
					&cli.BoolFlag{
						Name:  "ngrok",
						Usage: "enable ngrok tunnel",
					},
					&cli.StringFlag{
						Name:  "ngrok-auth",
						Usage: "ngrok auth token (or use NGROK_AUTHTOKEN env var)",
					},
					&cli.StringFlag{
						Name:  "ngrok-domain",
						Usage: "custom ngrok domain (optional)",
					},
				),
				Action: runServer,
			},
			{
				Name:   "mcp",
				Usage:  "run an MCP stdio server (starts an internal HTTP API if none is running)",
				Flags:  serverFlags(),
				Action: runStdioMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// serverFlags are shared between the server and mcp commands.
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Value: "localhost",
			Usage: "HTTP server host",
		},
		&cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "HTTP server port",
		},
		&cli.StringFlag{
			Name:  "puzzle-dir",
			Value: getPuzzleDirDefault(),
			Usage: "directory containing puzzle definitions",
		},
		&cli.StringFlag{
			Name:  "archive-dir",
			Value: "solves",
			Usage: "directory for persisted solve records",
		},
	}
}

// runSolve loads or assembles one puzzle definition, solves it, and prints
// the outcome.
func runSolve(ctx context.Context, cmd *cli.Command) error {
	def, err := resolveDefinition(cmd)
	if err != nil {
		return err
	}

	b, err := def.Board()
	if err != nil {
		return err
	}

	if cmd.Bool("display") {
		fmt.Printf("%s (player %s, exit row %d)\n\n%s\n", def.Name, def.Player, def.ExitRow, b)
	}

	var opts []solver.Option
	if maxNodes := cmd.Int("max-nodes"); maxNodes > 0 {
		opts = append(opts, solver.WithNodeLimit(maxNodes))
	}

	started := time.Now()
	sol, err := solver.New(b, def.Player, def.ExitRow, opts...).Solve(ctx)
	if err != nil {
		return err
	}

	if !sol.Solvable {
		fmt.Println("No solution exists.")
		fmt.Printf("\nExplored %d boards across %d layers in %s\n",
			sol.NodesExplored, sol.Layers, time.Since(started).Round(time.Millisecond))
		return nil
	}

	fmt.Printf("Solved in %d moves:\n", len(sol.Moves))
	final := b
	for i, m := range sol.Moves {
		fmt.Printf("%d. %s\n", i+1, m.Description())
		final, err = solver.Apply(final, m)
		if err != nil {
			return fmt.Errorf("solution replay failed at move %d: %w", i+1, err)
		}
	}

	if cmd.Bool("display") {
		fmt.Printf("\n%s\n", final)
	}

	fmt.Printf("\nExplored %d boards across %d layers in %s\n",
		sol.NodesExplored, sol.Layers, time.Since(started).Round(time.Millisecond))
	return nil
}

// resolveDefinition picks the puzzle to solve: inline --car descriptors win,
// then --puzzle as a file path or library name, then the default puzzle.
func resolveDefinition(cmd *cli.Command) (*board.Definition, error) {
	if cars := cmd.StringSlice("car"); len(cars) > 0 {
		specs := make([]board.VehicleSpec, 0, len(cars))
		for _, descriptor := range cars {
			spec, err := board.ParseVehicleSpec(descriptor)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}

		def := &board.Definition{
			Name:     "inline",
			Player:   cmd.String("player-car"),
			Vehicles: specs,
		}
		if err := board.ValidateDefinition(def); err != nil {
			return nil, err
		}
		return def, nil
	}

	name := cmd.String("puzzle")
	if strings.HasSuffix(name, ".json") {
		if _, err := os.Stat(name); err == nil {
			return board.LoadDefinition(name)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat puzzle file %s: %w", name, err)
		}
	}

	puzzleManager, err := puzzle.NewManager(cmd.String("puzzle-dir"))
	if err != nil {
		return nil, err
	}
	if name == "" {
		return puzzleManager.GetDefault(), nil
	}

	def, err := puzzleManager.LoadPuzzle(name)
	if err != nil {
		if strings.HasSuffix(name, ".json") {
			return nil, fmt.Errorf("puzzle %q: no such file, and not in %s: %w",
				name, cmd.String("puzzle-dir"), err)
		}
		return nil, err
	}
	return def, nil
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. If ngrok is enabled (via flag or environment), it also
// provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	solverService, hub, err := initializeServices(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mainRouter := buildRouter(solverService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("%s v%s listening on %s", AppName, Version, addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?solve=<solve_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := cmd.Bool("ngrok")
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(runCtx, cmd, mainRouter)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// buildRouter combines the API server with the /mcp proxy endpoint.
func buildRouter(solverService service.SolverService, hub *websocket.Hub, baseURL string) *http.ServeMux {
	apiServer := api.NewServer(solverService, hub)
	mcpClient := mcp.NewClient(baseURL)

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

	return mainRouter
}

// runNgrokTunnel provisions an ngrok tunnel and serves the router through it.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	// Get auth token from flag or environment (support both naming conventions)
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?solve=<solve_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires the puzzle and archive managers and the solver
// service, and connects tracked solves to the WebSocket hub. It also starts
// a background cleanup routine to prune stale records.
func initializeServices(cmd *cli.Command) (service.SolverService, *websocket.Hub, error) {
	puzzleManager, err := puzzle.NewManager(cmd.String("puzzle-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create puzzle manager: %w", err)
	}

	persistence, err := archive.NewFilePersistence(cmd.String("archive-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create record persistence: %w", err)
	}

	recordManager := archive.NewManagerWithPersistence(persistence)
	if err := recordManager.LoadPersistedRecords(); err != nil {
		log.Printf("Warning: Failed to load persisted solve records: %v", err)
	}

	solverService := service.NewSolverService(recordManager, puzzleManager)

	hub := websocket.NewHub()
	go hub.Run()

	service.SetProgressHandler(solverService, hub.BroadcastProgress)
	service.SetFinishedHandler(solverService, hub.BroadcastResult)

	go recordCleanupRoutine(recordManager)

	return solverService, hub, nil
}

// recordCleanupRoutine periodically removes finished records older than the
// retention window.
func recordCleanupRoutine(manager *archive.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredRecords(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired solve records", removed)
		}
	}
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API at
// the configured host and port; if unavailable, it starts a minimal internal
// HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	var baseURL string

	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/puzzles")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		solverService, hub, err := initializeServices(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		httpServer := &http.Server{
			Handler: api.NewServer(solverService, hub),
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
