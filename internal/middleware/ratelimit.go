package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiterConfig はログイン試行レート制限の設定を保持する。
type LoginLimiterConfig struct {
	Rate            rate.Limit    // ログイン試行のレート（req/sec）
	Burst           int           // バーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// DefaultLoginLimiterConfig はデフォルトのログインレート制限設定を返す。
// 認証情報の総当たり対策として10 req/min/クライアントに制限する。
func DefaultLoginLimiterConfig() LoginLimiterConfig {
	return LoginLimiterConfig{
		Rate:            rate.Limit(10.0 / 60.0),
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter はクライアントごとのレートリミッターとアクセス時刻を保持する。
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter はログインエンドポイントのクライアント別レート制限を管理する。
// クライアントはリモートアドレスのホスト部で識別する。
type LoginLimiter struct {
	config LoginLimiterConfig

	mu       sync.RWMutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewLoginLimiter は新しいLoginLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewLoginLimiter(config LoginLimiterConfig) *LoginLimiter {
	ll := &LoginLimiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go ll.cleanupLoop()

	return ll
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (ll *LoginLimiter) Stop() {
	close(ll.stopCh)
}

// Middleware はログイン試行のレート制限ミドルウェアを返す。
// 制限超過時は429とRetry-Afterヘッダーを返す。
func (ll *LoginLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			limiter := ll.getOrCreateLimiter(client)

			if !limiter.Allow() {
				writeRateLimitResponse(w, ll.config.Rate)
				slog.Warn("login rate limit exceeded",
					slog.String("client", client),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LimiterCount は現在管理されているリミッターのエントリ数を返す。
// テスト用。
func (ll *LoginLimiter) LimiterCount() int {
	ll.mu.RLock()
	defer ll.mu.RUnlock()
	return len(ll.limiters)
}

// getOrCreateLimiter はクライアントのリミッターを取得または作成する。
func (ll *LoginLimiter) getOrCreateLimiter(client string) *rate.Limiter {
	ll.mu.RLock()
	cl, exists := ll.limiters[client]
	ll.mu.RUnlock()

	if exists {
		ll.mu.Lock()
		cl.lastAccess = time.Now()
		ll.mu.Unlock()
		return cl.limiter
	}

	ll.mu.Lock()
	defer ll.mu.Unlock()

	// ダブルチェック
	if cl, exists := ll.limiters[client]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(ll.config.Rate, ll.config.Burst)
	ll.limiters[client] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop は一定間隔で長期間アクセスのないエントリを削除する。
func (ll *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(ll.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ll.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-ll.config.CleanupInterval)

			ll.mu.Lock()
			for client, cl := range ll.limiters {
				if cl.lastAccess.Before(cutoff) {
					delete(ll.limiters, client)
				}
			}
			ll.mu.Unlock()
		}
	}
}

// clientKey はリクエストからクライアント識別子を導出する。
// リモートアドレスのホスト部を使用し、分離できない場合はアドレス全体を使う。
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse はレート制限超過レスポンスを書き込む。
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	// Retry-Afterの算出: 1トークンが補充されるまでの秒数
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"error": "Too many login attempts. Please try again later.",
	})
}
