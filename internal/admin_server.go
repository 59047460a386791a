package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chatmux/auth"
	"chatmux/contract"
	"chatmux/domain"
	chaterrors "chatmux/errors"
	"chatmux/observability"
	"chatmux/repositories"
	"chatmux/sink"

	"github.com/samber/lo"
)

// AdminServer is the authenticated management surface: login, link table
// CRUD, the recent-relay timeline, the audit trail and live stats. It
// never exposes platform credentials or message stores.
type AdminServer struct {
	log      *slog.Logger
	issuer   auth.TokenIssuer
	username string
	// Argon2id hash of the admin password, from configuration.
	passwordHash string
	manager      contract.ILinkManager
	timeline     *sink.Timeline
	audits       repositories.IAuditRepository
	monitor      *observability.Monitor
	server       *http.Server
}

func NewAdminServer(log *slog.Logger, issuer auth.TokenIssuer, username, passwordHash string,
	manager contract.ILinkManager, timeline *sink.Timeline,
	audits repositories.IAuditRepository, monitor *observability.Monitor) *AdminServer {
	return &AdminServer{
		log:          log,
		issuer:       issuer,
		username:     username,
		passwordHash: passwordHash,
		manager:      manager,
		timeline:     timeline,
		audits:       audits,
		monitor:      monitor,
	}
}

func (s *AdminServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /links", s.handleListLinks)
	protected.HandleFunc("POST /links", s.handleAddLink)
	protected.HandleFunc("DELETE /links", s.handleRemoveLink)
	protected.HandleFunc("GET /timeline", s.handleTimeline)
	protected.HandleFunc("GET /audits", s.handleAudits)
	protected.HandleFunc("GET /stats", s.handleStats)
	mux.Handle("/", auth.Middleware(s.issuer, protected))
	return mux
}

// Listen serves the admin API until ctx is cancelled.
func (s *AdminServer) Listen(ctx context.Context, port int) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log.Info("Admin API listening", "port", port)
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *AdminServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	match, err := auth.ComparePassword(req.Password, s.passwordHash)
	if err != nil || !match || req.Username != s.username {
		s.log.Warn("Rejected admin login", "username", req.Username)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.issuer.Generate(req.Username, []string{"admin"})
	if err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

type linkPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Raw  bool   `json:"raw"`
}

func (s *AdminServer) handleListLinks(w http.ResponseWriter, _ *http.Request) {
	payload := lo.Map(s.manager.Links(), func(l domain.ChannelLink, _ int) linkPayload {
		return linkPayload{From: l.From.String(), To: l.To.String(), Raw: l.Raw}
	})
	writeJSON(w, payload)
}

func (s *AdminServer) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req linkPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}
	from, err := parseRef(req.From)
	if err == nil {
		var to domain.ChannelRef
		to, err = parseRef(req.To)
		if err == nil {
			err = s.manager.AddLink(from, to, req.Raw)
		}
	}
	if err != nil {
		writeLinkError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *AdminServer) handleRemoveLink(w http.ResponseWriter, r *http.Request) {
	var req linkPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}
	from, err := parseRef(req.From)
	if err == nil {
		var to domain.ChannelRef
		to, err = parseRef(req.To)
		if err == nil {
			err = s.manager.RemoveLink(from, to)
		}
	}
	if err != nil {
		writeLinkError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *AdminServer) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.timeline.Entries())
}

func (s *AdminServer) handleAudits(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	records, err := s.audits.RecentAudits(limit)
	if err != nil {
		http.Error(w, "audit read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

func (s *AdminServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.monitor.GetLatest())
}

func parseRef(text string) (domain.ChannelRef, error) {
	service, channelID, found := strings.Cut(text, "/")
	if !found || service == "" || channelID == "" {
		return domain.ChannelRef{}, fmt.Errorf("%w: %q must be service/channelId",
			chaterrors.ErrInvalidReference, text)
	}
	return domain.ChannelRef{Service: strings.ToLower(service), ChannelID: channelID}, nil
}

func writeLinkError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chaterrors.ErrInvalidReference),
		errors.Is(err, chaterrors.ErrSelfLink),
		errors.Is(err, chaterrors.ErrUnknownService):
		status = http.StatusBadRequest
	case errors.Is(err, chaterrors.ErrAlreadyLinked):
		status = http.StatusConflict
	case errors.Is(err, chaterrors.ErrLinkNotFound):
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
