// Package pprofserver exposes runtime profiles on a separate listener.
package pprofserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config stores pprof server credentials. Loopback callers need none.
type Config struct {
	User string
	Pass string
}

// Handler serves /debug/pprof/* and /debug/vars.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(loopbackOrBasicAuth(cfg))
	r.Mount("/debug", chimw.Profiler())
	return r
}

// New returns the debug server listening on addr.
func New(addr string, cfg Config) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		// CPU profiles stream for up to 30s by default
		WriteTimeout: 60 * time.Second,
	}
}

func loopbackOrBasicAuth(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var authed http.Handler
		if cfg.User != "" && cfg.Pass != "" {
			authed = chimw.BasicAuth("pprof", map[string]string{cfg.User: cfg.Pass})(next)
		} else {
			authed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
