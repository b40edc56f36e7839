// Package server exposes lookups as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-Id"

// Dictionary is the lookup capability the API serves.
type Dictionary interface {
	Lookup(ctx context.Context, loc latin.Locator) (*latin.ForwardEntry, error)
	Reverse(ctx context.Context, term string) (*latin.ReverseResult, error)
}

// Server handles API requests.
type Server struct {
	dict      Dictionary
	explainer *llm.Client
}

// New creates a server. A nil explainer disables the explain parameter.
func New(d Dictionary, explainer *llm.Client) *Server {
	return &Server{dict: d, explainer: explainer}
}

type errorResponse struct {
	Error      string            `json:"error"`
	RequestID  string            `json:"requestId"`
	Candidates []latin.Candidate `json:"candidates,omitempty"`
}

type forwardResponse struct {
	RequestID    string              `json:"requestId"`
	Entry        *latin.ForwardEntry `json:"entry"`
	Explanations []llm.Explanation   `json:"explanations,omitempty"`
}

type reverseResponse struct {
	RequestID    string               `json:"requestId"`
	Result       *latin.ReverseResult `json:"result"`
	Explanations []llm.Explanation    `json:"explanations,omitempty"`
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(accessLog())
	engine.NoRoute(func(ctx *gin.Context) {
		writeError(ctx, http.StatusNotFound, "no such route")
	})

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, map[string]any{"ok": true})
	})
	engine.GET("/latin/:word", s.handleLatin)
	engine.GET("/english/:term", s.handleEnglish)
	return engine
}

func (s *Server) handleLatin(ctx *gin.Context) {
	loc := latin.Locator{Word: ctx.Param("word"), Variant: ctx.Query("variant")}
	entry, err := s.dict.Lookup(ctx.Request.Context(), loc)
	if err != nil {
		s.writeLookupError(ctx, err)
		return
	}
	if entry.RequiresClarification {
		ctx.JSON(http.StatusConflict, errorResponse{
			Error:      "word is ambiguous, repeat the request with one of the candidate variants",
			RequestID:  ctx.GetString(requestIDHeader),
			Candidates: entry.Candidates,
		})
		return
	}

	resp := forwardResponse{RequestID: ctx.GetString(requestIDHeader), Entry: entry}
	if wantsExplanation(ctx) {
		resp.Explanations = s.explain(ctx, func(c context.Context) ([]llm.Explanation, error) {
			return s.explainer.ExplainEntry(c, entry)
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) handleEnglish(ctx *gin.Context) {
	res, err := s.dict.Reverse(ctx.Request.Context(), ctx.Param("term"))
	if err != nil {
		s.writeLookupError(ctx, err)
		return
	}

	resp := reverseResponse{RequestID: ctx.GetString(requestIDHeader), Result: res}
	if wantsExplanation(ctx) {
		resp.Explanations = s.explain(ctx, func(c context.Context) ([]llm.Explanation, error) {
			return s.explainer.ExplainReverse(c, res)
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

// explain runs fn and degrades to no explanations on failure.
func (s *Server) explain(ctx *gin.Context, fn func(context.Context) ([]llm.Explanation, error)) []llm.Explanation {
	out, err := fn(ctx.Request.Context())
	if err != nil {
		log.Warn().Err(err).Str("requestId", ctx.GetString(requestIDHeader)).Msg("explanation failed")
		return nil
	}
	return out
}

func wantsExplanation(ctx *gin.Context) bool {
	v := ctx.Query("explain")
	return v == "1" || v == "true"
}

func (s *Server) writeLookupError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, latin.ErrNotFound):
		writeError(ctx, http.StatusNotFound, "given word can not be found")
	default:
		log.Error().Err(err).Str("requestId", ctx.GetString(requestIDHeader)).Msg("lookup failed")
		writeError(ctx, http.StatusBadGateway, err.Error())
	}
}

func writeError(ctx *gin.Context, status int, msg string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Error: msg, RequestID: ctx.GetString(requestIDHeader)})
}

// requestID tags every request with a fresh or client-supplied id.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		ctx.Set(requestIDHeader, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t0 := time.Now()
		ctx.Next()
		log.Info().
			Str("requestId", ctx.GetString(requestIDHeader)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("took", time.Since(t0)).
			Msg("request")
	}
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting API server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("API server stopped")
		return nil
	}
}
