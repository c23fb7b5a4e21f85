// Package relay runs the local development relay: a small reverse proxy
// that forwards /api/* to the upstream quotes provider so a locally running
// client has a single same-origin base to talk to.
package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/jgrier/quotd/internal/logging"
)

// Handler returns an http.Handler proxying every request to the upstream
// origin, preserving the request path.
func Handler(upstreamBaseURL string) (http.Handler, error) {
	target, err := url.Parse(upstreamBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("upstream URL missing scheme or host: %s", upstreamBaseURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.Host = target.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.Error("relay upstream error", "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return proxy, nil
}

// ListenAndServe runs the relay on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr, upstreamBaseURL string) error {
	handler, err := Handler(upstreamBaseURL)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.Info("relay listening", "addr", addr, "upstream", upstreamBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
