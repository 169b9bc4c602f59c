package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"erp-assistant-backend/internal/assistant"
	"erp-assistant-backend/internal/config"
	"erp-assistant-backend/internal/erpnext"
	"erp-assistant-backend/internal/intent"
	"erp-assistant-backend/internal/store"
	"erp-assistant-backend/internal/types"
)

type Server struct {
	router    *chi.Mux
	store     *store.MemoryStore
	cfg       config.Config
	assistant *assistant.Assistant
	log       *zap.Logger
}

func NewServer(cfg config.Config, log *zap.Logger) (*Server, error) {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true, // Enable credentials for cookies
		MaxAge:           300,
	}))

	var ai *openai.Client
	if cfg.OpenAIAPIKey != "" {
		ai = openai.NewClient(cfg.OpenAIAPIKey)
	}

	var extractor intent.Extractor = intent.PatternExtractor{}
	if cfg.ExtractStrategy == config.StrategyModel {
		if ai == nil {
			return nil, fmt.Errorf("EXTRACT_STRATEGY=model requires OPENAI_API_KEY")
		}
		me, err := intent.LoadModelExtractor(cfg.ExtractSpecFile, ai, cfg.Model, log)
		if err != nil {
			return nil, fmt.Errorf("loading extraction spec: %w", err)
		}
		extractor = me
	}

	erp := erpnext.NewClient(cfg.ERPBaseURL, erpnext.Credentials{
		APIKey:    cfg.ERPAPIKey,
		APISecret: cfg.ERPAPISecret,
		Token:     cfg.ERPAuthToken,
	})

	s := &Server{
		router: r,
		store:  store.NewMemoryStore(40),
		cfg:    cfg,
		log:    log,
		assistant: &assistant.Assistant{
			Client:     erp,
			Extractor:  extractor,
			AI:         ai,
			Company:    cfg.CompanyName,
			UserDomain: cfg.DefaultUserDomain,
			Model:      cfg.Model,
			Log:        log,
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/login", s.handleLogin)
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/api/logout", s.handleLogout)
		r.Post("/api/chat", s.handleChat)
		r.Post("/api/confirm", s.handleConfirm)
		r.Get("/api/doctypes", s.handleDoctypes)
		r.Get("/api/records/{doctype}", s.handleRecords)
		r.Get("/api/report", s.handleReport)
	})
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if s.cfg.AppPassword == "" {
		s.writeError(w, http.StatusServiceUnavailable, "login is not configured")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AppPassword)) != 1 {
		s.writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	sid := newSessionID()
	s.store.SetAuthenticated(sid)
	SetSessionCookie(w, sid)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.LoginResponse{SessionID: sid})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sid := getSessionID(r)
	s.store.ClearSession(sid)
	ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "logged out"})
}

// requireAuth rejects requests whose session has not passed the login gate.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := getSessionID(r)
		if sid == "" || !s.store.IsAuthenticated(sid) {
			s.writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getSessionID(r)
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	s.store.Append(sid, store.Message{Role: "user", Content: req.Message})

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	outcomes := s.assistant.Process(ctx, req.Message)
	if len(outcomes) == 0 {
		reply := s.freeFormReply(ctx, req.Message)
		s.store.Append(sid, store.Message{Role: "assistant", Content: reply})
		s.writeChat(w, sid, types.ChatResponse{SessionID: sid, Reply: reply})
		return
	}

	results := make([]types.CommandResult, 0, len(outcomes))
	var replies []string
	for _, out := range outcomes {
		res := types.CommandResult{
			Intent:            string(out.Kind),
			OK:                out.OK,
			Message:           out.Message,
			Detail:            out.Detail,
			Payload:           out.Payload,
			NeedsConfirmation: out.NeedsConfirmation,
		}
		if out.NeedsConfirmation && out.Pending != nil {
			token := uuid.NewString()
			s.store.SetPending(token, sid, *out.Pending)
			res.ConfirmToken = token
		}
		results = append(results, res)
		replies = append(replies, out.Message)
	}
	reply := strings.Join(replies, "\n")
	s.store.Append(sid, store.Message{Role: "assistant", Content: reply})
	s.writeChat(w, sid, types.ChatResponse{SessionID: sid, Reply: reply, Results: results})
}

// freeFormReply answers instructions that matched no command family.
func (s *Server) freeFormReply(ctx context.Context, message string) string {
	answer, err := s.assistant.Ask(ctx, message)
	if err != nil {
		s.log.Warn("free-form reply failed", zap.Error(err))
		return "I could not match that to a known command. Try rephrasing, for example: 'Create a department named Signage'."
	}
	return answer
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req types.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getSessionID(r)
	cmd, ok := s.store.TakePending(req.Token, sid)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no pending command for this token")
		return
	}
	if !req.Confirm {
		s.writeChat(w, sid, types.ChatResponse{SessionID: sid, Reply: "Command cancelled."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	out := s.assistant.Dispatch(ctx, cmd)
	s.store.Append(sid, store.Message{Role: "assistant", Content: out.Message})
	s.writeChat(w, sid, types.ChatResponse{
		SessionID: sid,
		Reply:     out.Message,
		Results: []types.CommandResult{{
			Intent:  string(out.Kind),
			OK:      out.OK,
			Message: out.Message,
			Detail:  out.Detail,
			Payload: out.Payload,
		}},
	})
}

func (s *Server) handleDoctypes(w http.ResponseWriter, r *http.Request) {
	names, err := erpnext.ListDoctypes(r.Context(), s.assistant.Client)
	if err != nil {
		s.log.Error("doctype listing failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "could not fetch doctypes")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"doctypes": names})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	doctype := chi.URLParam(r, "doctype")
	rows, err := s.assistant.Client.Records(r.Context(), doctype, nil)
	if err != nil {
		s.log.Error("record listing failed", zap.String("doctype", doctype), zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "could not fetch records")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"doctype": doctype, "records": rows})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	summary := erpnext.SummaryCounts(r.Context(), s.assistant.Client)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"summary": summary})
}

func (s *Server) writeChat(w http.ResponseWriter, sid string, resp types.ChatResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return "s_" + uuid.NewString()
}

// getSessionID retrieves the session ID from cookie or header
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	return ""
}
