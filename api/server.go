package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/JaredCorduan/rush-hour-solver/game/archive"
	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/puzzle"
	"github.com/JaredCorduan/rush-hour-solver/game/service"
	"github.com/JaredCorduan/rush-hour-solver/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(solverService service.SolverService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Solving
	api.HandleFunc("/solve", s.handleSolveSync).Methods("POST")
	api.HandleFunc("/solves", s.handleStartSolve).Methods("POST")
	api.HandleFunc("/solves", s.handleListSolves).Methods("GET")
	api.HandleFunc("/solves/{id}", s.handleGetSolve).Methods("GET")
	api.HandleFunc("/solves/{id}", s.handleDeleteSolve).Methods("DELETE")

	// Puzzle library
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles", s.handleSavePuzzle).Methods("POST")
	api.HandleFunc("/puzzles/{name}", s.handleGetPuzzle).Methods("GET")
	api.HandleFunc("/puzzles/{name}/render", s.handleRenderPuzzle).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, puzzle.ErrPuzzleNotFound), errors.Is(err, archive.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, puzzle.ErrInvalidPuzzle),
		errors.Is(err, board.ErrOverlap),
		errors.Is(err, board.ErrOutOfBounds),
		errors.Is(err, board.ErrDuplicateName),
		errors.Is(err, board.ErrMissingPlayer),
		errors.Is(err, board.ErrWrongOrientation),
		errors.Is(err, board.ErrWrongRow),
		errors.Is(err, board.ErrUnknownModel):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Solve Handlers

func (s *Server) handleSolveSync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID   string            `json:"puzzle_id,omitempty"`
		Definition *board.Definition `json:"definition,omitempty"`
		MaxNodes   int               `json:"max_nodes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	def := req.Definition
	if def == nil {
		loaded, err := s.service.GetPuzzle(r.Context(), req.PuzzleID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		def = loaded
	}

	result, err := s.service.SolveBoard(r.Context(), def, req.MaxNodes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SOLVE] puzzle=%s solvable=%t moves=%d nodes=%d",
		def.Name, result.Solvable, result.MoveCount, result.NodesExplored)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleStartSolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string `json:"puzzle_id,omitempty"`
		MaxNodes int    `json:"max_nodes,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	info, err := s.service.StartSolve(r.Context(), req.PuzzleID, req.MaxNodes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSolves(w http.ResponseWriter, r *http.Request) {
	solves, err := s.service.ListSolves(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of solves to return

	if order == "" {
		order = "desc"
	}

	sort.Slice(solves, func(i, j int) bool {
		if order == "asc" {
			return solves[i].CreatedAt.Before(solves[j].CreatedAt)
		}
		return solves[i].CreatedAt.After(solves[j].CreatedAt)
	})

	limit := len(solves)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(solves) {
			limit = l
		}
	}
	solves = solves[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(solves),
		"solves": solves,
		"order":  order,
	})
}

func (s *Server) handleGetSolve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	info, err := s.service.GetSolve(r.Context(), vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSolve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	solveID := vars["id"]

	if err := s.service.DeleteSolve(r.Context(), solveID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Solve %s deleted", solveID),
	})
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(puzzles),
		"puzzles": puzzles,
	})
}

func (s *Server) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID   string            `json:"puzzle_id"`
		Definition *board.Definition `json:"definition"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PuzzleID == "" || req.Definition == nil {
		respondError(w, http.StatusBadRequest, "puzzle_id and definition are required")
		return
	}

	if err := s.service.SavePuzzle(r.Context(), req.PuzzleID, req.Definition); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("Puzzle %s saved", req.PuzzleID),
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	def, err := s.service.GetPuzzle(r.Context(), vars["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, def)
}

func (s *Server) handleRenderPuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	def, err := s.service.GetPuzzle(r.Context(), vars["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	b, err := def.Board()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":     def.Name,
		"exit_row": def.ExitRow,
		"player":   def.Player,
		"rows":     b.Render(),
	})
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	solveID := r.URL.Query().Get("solve")
	if solveID == "" {
		respondError(w, http.StatusBadRequest, "solve query parameter is required")
		return
	}

	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "WebSocket hub not available")
		return
	}

	s.hub.ServeWS(w, r, solveID)
}
