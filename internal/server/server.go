package server

import (
	"LatticeDb/internal/interpreter"
	"LatticeDb/internal/interpreter/eval"
	l "LatticeDb/internal/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// maxBodySize caps the /exec request body.
const maxBodySize = 1 << 20

type sqlRequest struct {
	SQL string `json:"sql"`
}

type sqlResponse struct {
	Success   bool         `json:"success"`
	RequestID string       `json:"request_id"`
	Result    *eval.Result `json:"result,omitempty"`
	Output    string       `json:"output,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Server exposes one session over HTTP. Statements run one at a time.
type Server struct {
	mu     sync.Mutex
	eval   *eval.Evaluator
	sess   *eval.Session
	logger *l.Logger
}

func New(ev *eval.Evaluator, sess *eval.Session) *Server {
	if sess == nil {
		sess = &eval.Session{}
	}
	return &Server{eval: ev, sess: sess, logger: l.Get("server")}
}

// Handler returns the routes with request ids attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health & readiness
	mux.HandleFunc("/health", s.health)

	// POST /exec -> execute a single statement against the server session
	mux.HandleFunc("/exec", s.execHandler)

	return withRequestID(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// health returns 200 OK for liveness checks
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// execHandler parses and runs one statement.
func (s *Server) execHandler(w http.ResponseWriter, r *http.Request) {
	id := requestID(r)

	if r.Method != http.MethodPost {
		s.logger.Error("[%s] Invalid method used: %s", id, r.Method)
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, sqlResponse{RequestID: id, Error: "method not allowed"})
		return
	}

	var req sqlRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		s.logger.Error("[%s] Failed to decode request body: %v", id, err)
		writeJSON(w, http.StatusBadRequest, sqlResponse{RequestID: id, Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		writeJSON(w, http.StatusBadRequest, sqlResponse{RequestID: id, Error: "sql must not be empty"})
		return
	}

	s.mu.Lock()
	result, err := s.eval.ExecuteSQL(s.sess, req.SQL)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("[%s] Failed to execute SQL: %v", id, err)
		writeJSON(w, http.StatusBadRequest, sqlResponse{RequestID: id, Error: err.Error()})
		return
	}

	s.logger.Debug("[%s] Executed: %s", id, req.SQL)
	writeJSON(w, http.StatusOK, sqlResponse{
		Success:   true,
		RequestID: id,
		Result:    result,
		Output:    interpreter.FormatResult(result),
	})
}

func writeJSON(w http.ResponseWriter, status int, body sqlResponse) {
	responseBytes, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(responseBytes)
}

// WaitForServer polls baseURL/health until it answers 200.
func WaitForServer(baseURL string, attempts int, delay time.Duration) error {
	url := strings.TrimRight(baseURL, "/") + "/health"
	client := &http.Client{Timeout: delay + time.Second}

	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = fmt.Errorf("health check returned %s", resp.Status)
		} else {
			lastErr = err
		}
		time.Sleep(delay)
	}
	return fmt.Errorf("server at %s not ready after %d attempts: %w", baseURL, attempts, lastErr)
}
