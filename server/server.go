// Package server 是 Router 协作方：把 HTTP 请求映射为引擎调用，
// 并把结构化结果包装为响应信封。
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rushteam/affinity/engine"
)

// Envelope 是响应信封：status / headers / body。
// Body 序列化为 JSON 响应体，Headers 写入 HTTP 头。
type Envelope struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    interface{}       `json:"body"`
}

// availableEndpoints 在 404 信封中返回，提示调用方可用的路由。
var availableEndpoints = []string{
	"GET /users/recommendations",
	"GET /users/{id}/recommendations",
}

// Server 把推荐引擎暴露为 HTTP 服务。
type Server struct {
	Engine *engine.Engine
	Logger zerolog.Logger
}

// NewServer 创建 HTTP 服务
func NewServer(e *engine.Engine, logger zerolog.Logger) *Server {
	return &Server{Engine: e, Logger: logger}
}

// Handler 构建路由。
//
// 路由表：
//   - GET /users/recommendations       匿名推荐（默认模式内容 + 趋势）
//   - GET /users/{id}/recommendations  个性化推荐
//
// 其余路径返回 404 信封；任何未捕获的失败返回 500 信封，进程不退出。
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Get("/users/recommendations", s.handleRecommendations)
	r.Get("/users/{id}/recommendations", s.handleRecommendations)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.writeEnvelope(w, Envelope{
			Status: http.StatusNotFound,
			Body: map[string]interface{}{
				"error":               "Endpoint not found",
				"available_endpoints": availableEndpoints,
			},
		})
	})

	return r
}

func (s *Server) handleRecommendations(w http.ResponseWriter, req *http.Request) {
	// 路径中没有 id 或 id 不是数字时按匿名请求处理
	var userID int64
	if raw := chi.URLParam(req, "id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			userID = id
		}
	}

	result, err := s.Engine.Recommend(req.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeEnvelope(w, Envelope{
		Status: http.StatusOK,
		Body:   result,
	})
}

// writeEnvelope 写出响应信封：Headers 进 HTTP 头，Body 序列化为响应体。
func (s *Server) writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Powered-By", "affinity")
	for k, v := range env.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(env.Status)
	if err := json.NewEncoder(w).Encode(env.Body); err != nil {
		s.Logger.Error().Err(err).Msg("encode response")
	}
}

// writeError 保证任何失败都得到良构的 500 信封
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeEnvelope(w, Envelope{
		Status: http.StatusInternalServerError,
		Body: map[string]interface{}{
			"error":   "Internal server error",
			"message": err.Error(),
			"handler": "recommendations",
		},
	})
}

// recoverer 捕获 handler panic，返回 500 信封而不是让进程崩溃
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.Logger.Error().Interface("panic", rec).Str("path", req.URL.Path).Msg("handler panic")
				s.writeError(w, fmt.Errorf("%v", rec))
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// requestLogger 记录每个请求的方法、路径、状态码与耗时
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.Logger.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ListenAndServe 启动 HTTP 服务，ctx 取消时优雅退出。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.Logger.Info().Str("addr", addr).Msg("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
