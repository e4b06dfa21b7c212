package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/seeklab/handlescout/internal/domain"
	"github.com/seeklab/handlescout/internal/domain/search/mode"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
	groupinguc "github.com/seeklab/handlescout/internal/usecase/grouping"
	healthuc "github.com/seeklab/handlescout/internal/usecase/health"
	sessionuc "github.com/seeklab/handlescout/internal/usecase/session"
)

// Chatter answers free-form naming questions. Optional capability.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the session controller over HTTP.
type Server struct {
	session       *sessionuc.Service
	health        *healthuc.Service
	chat          Chatter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. chat can be nil.
func NewServer(
	session *sessionuc.Service,
	health *healthuc.Service,
	chat Chatter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		session: session,
		health:  health,
		chat:    chat,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		networkHandler,
		staleResponseHandler,
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest),
		sentinelHandler(domain.ErrSearchInFlight, http.StatusConflict),
		sentinelHandler(domain.ErrHistoryEntryNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrChatUnavailable, http.StatusServiceUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/search", s.Search)
	r.Post("/api/mode", s.SetMode)
	r.Get("/api/platforms", s.ListPlatforms)
	r.Post("/api/platforms/select-all", s.SelectAllPlatforms)
	r.Post("/api/platforms/deselect-all", s.DeselectAllPlatforms)
	r.Post("/api/platforms/{name}/toggle", s.TogglePlatform)
	r.Get("/api/history", s.ListHistory)
	r.Post("/api/history/{index}/replay", s.ReplayHistory)
	r.Post("/api/chat", s.Chat)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	view, err := s.session.Submit(r.Context(), payload.RawFields{
		Keyword:   req.Keyword,
		Username:  req.Username,
		MaxLength: req.MaxLength,
		Length:    req.Length,
		Count:     req.Count,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToDTO(view))
}

// SetMode handles POST /api/mode.
func (s *Server) SetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.session.SetMode(mode.Mode(req.Mode)); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"mode": string(s.session.ActiveMode()),
	})
}

// ListPlatforms handles GET /api/platforms.
func (s *Server) ListPlatforms(w http.ResponseWriter, _ *http.Request) {
	s.writePlatforms(w)
}

// TogglePlatform handles POST /api/platforms/{name}/toggle.
func (s *Server) TogglePlatform(w http.ResponseWriter, r *http.Request) {
	s.session.TogglePlatform(chi.URLParam(r, "name"))
	s.writePlatforms(w)
}

// SelectAllPlatforms handles POST /api/platforms/select-all.
func (s *Server) SelectAllPlatforms(w http.ResponseWriter, _ *http.Request) {
	s.session.SelectAllPlatforms()
	s.writePlatforms(w)
}

// DeselectAllPlatforms handles POST /api/platforms/deselect-all.
func (s *Server) DeselectAllPlatforms(w http.ResponseWriter, _ *http.Request) {
	s.session.DeselectAllPlatforms()
	s.writePlatforms(w)
}

func (s *Server) writePlatforms(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"platforms": s.session.Platforms(),
	})
}

// ListHistory handles GET /api/history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.session.History(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if r.URL.Query().Has("limit") {
		var limit int
		if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		if limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
	})
}

// ReplayHistory handles POST /api/history/{index}/replay.
func (s *Server) ReplayHistory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history index")
		return
	}

	view, err := s.session.Replay(r.Context(), index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToDTO(view))
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		s.handleDomainError(w, domain.ErrChatUnavailable)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.chat.Chat(r.Context(), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type searchRequest struct {
	Keyword   string `json:"keyword"`
	Username  string `json:"username"`
	MaxLength string `json:"max_length"`
	Length    string `json:"length"`
	Count     string `json:"count"`
}

type groupDTO struct {
	Username  string   `json:"username"`
	Platforms []string `json:"platforms"`
	Quality   int      `json:"quality"`
}

type searchResponse struct {
	Mode      string              `json:"mode"`
	Groups    []groupDTO          `json:"groups,omitempty"`
	Matrix    []groupinguc.Status `json:"matrix,omitempty"`
	Domains   []groupinguc.Status `json:"domains,omitempty"`
	Statement string              `json:"statement,omitempty"`
	ElapsedMs int64               `json:"elapsed_ms"`
	Count     int                 `json:"count"`
	NoResults bool                `json:"no_results"`
}

func viewToDTO(v groupinguc.View) searchResponse {
	resp := searchResponse{
		Mode:      string(v.Mode),
		Matrix:    v.Matrix,
		Domains:   v.Domains,
		Statement: v.Statement,
		ElapsedMs: v.Elapsed.Milliseconds(),
		Count:     v.Count,
		NoResults: v.NoResults,
	}
	for _, g := range v.Groups {
		resp.Groups = append(resp.Groups, groupDTO{
			Username:  g.Username(),
			Platforms: g.Platforms(),
			Quality:   g.Quality(),
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

// validationHandler surfaces the failure kind and field alongside the message.
func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": verr.Error(),
		"kind":  string(verr.Kind),
		"field": verr.Field,
	})
	return true
}

// networkHandler maps collaborator failures to 502 and preserves the
// collaborator-supplied message.
func networkHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrNetwork) {
		return false
	}
	msg := "availability service unreachable"
	var nerr *domain.NetworkError
	if errors.As(err, &nerr) && nerr.Message != "" {
		msg = nerr.Message
	}
	writeError(w, http.StatusBadGateway, msg)
	return true
}

// staleResponseHandler silently drops responses the session already moved past.
func staleResponseHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrStaleResponse) {
		return false
	}
	w.WriteHeader(http.StatusNoContent)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
