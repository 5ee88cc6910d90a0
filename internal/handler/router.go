package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maica08/student-roster/internal/middleware"
	"github.com/maica08/student-roster/internal/roster"
	"github.com/maica08/student-roster/internal/view"
)

// HealthChecker はヘルスチェックに必要なインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// データアクセス
	Store Store

	// 認証
	AuthService AuthServiceInterface
	TokenParser middleware.ClaimsParser

	// ミドルウェア依存
	LoginLimiter      *middleware.LoginLimiter
	CORSAllowedOrigin string
	Metrics           middleware.HTTPMetricsRecorder

	// 運用エンドポイント
	MetricsHandler http.Handler
	HealthChecker  HealthChecker

	// HTMLビュー
	Views *view.Handler

	Logger *slog.Logger
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → Metrics → CORS
//
// ロールゲートは保護対象のルートグループにのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService)
	classHandler := NewClassHandler(deps.Store)

	// --- 運用エンドポイント ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証ルート ---

	r.Route("/auth", func(r chi.Router) {
		if deps.LoginLimiter != nil {
			r.With(deps.LoginLimiter.Middleware()).Post("/login", authHandler.Login)
		} else {
			r.Post("/login", authHandler.Login)
		}

		// 認証のみを要求（ロール制限なし）
		r.With(middleware.RequireRole(deps.TokenParser)).Get("/protected", authHandler.Protected)
	})

	// --- APIルート ---

	r.Route("/api", func(r chi.Router) {
		for _, res := range roster.All() {
			res := res
			rh := NewResourceHandler(deps.Store, res)

			r.Route("/"+res.Name, func(r chi.Router) {
				if len(res.ListRoles) > 0 {
					r.With(middleware.RequireRole(deps.TokenParser, res.ListRoles...)).Get("/", rh.List)
				} else {
					r.Get("/", rh.List)
				}

				r.With(middleware.RequireRole(deps.TokenParser, res.MutateRoles...)).Post("/", rh.Create)

				r.Route("/{id}", func(r chi.Router) {
					if res.Name == "classes" {
						r.Get("/", classHandler.Get)
					}
					r.With(middleware.RequireRole(deps.TokenParser, res.MutateRoles...)).Put("/", rh.Update)
					r.With(middleware.RequireRole(deps.TokenParser, res.DeleteRoles...)).Delete("/", rh.Delete)
				})
			})
		}
	})

	// --- HTMLビュー ---

	if deps.Views != nil {
		r.Get("/", deps.Views.Index)
		for _, res := range roster.All() {
			r.Get("/"+res.Name, deps.Views.List(res))
		}
	}

	return r
}
