// Package proxy streams requests to upstream instances.
package proxy

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

type target struct {
	base         *url.URL
	strip        int
	preserveHost bool
}

type targetKey struct{}

// Forwarder is a reverse proxy whose upstream is chosen per request. One
// shared transport pools connections across all upstreams.
type Forwarder struct {
	rp      *httputil.ReverseProxy
	timeout time.Duration
}

func New(connectTimeout, responseTimeout time.Duration) *Forwarder {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          200,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	rp := &httputil.ReverseProxy{
		Transport:     transport,
		FlushInterval: 100 * time.Millisecond,
		Director: func(req *http.Request) {
			t := req.Context().Value(targetKey{}).(*target)

			originalHost := req.Host
			originalProto := "http"
			if req.TLS != nil {
				originalProto = "https"
			} else if xf := req.Header.Get("X-Forwarded-Proto"); xf != "" {
				originalProto = xf
			}

			req.URL.Scheme = t.base.Scheme
			req.URL.Host = t.base.Host
			if !t.preserveHost {
				req.Host = t.base.Host
			}
			if t.strip > 0 {
				req.URL.Path = StripSegments(req.URL.Path, t.strip)
				if rp := req.URL.RawPath; rp != "" {
					req.URL.RawPath = StripSegments(rp, t.strip)
				}
			}

			if req.Header.Get("X-Forwarded-Proto") == "" {
				req.Header.Set("X-Forwarded-Proto", originalProto)
			}
			if req.Header.Get("X-Forwarded-Host") == "" && originalHost != "" {
				req.Header.Set("X-Forwarded-Host", originalHost)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			l := logging.FromContext(r.Context()).With("component", "proxy", "path", r.URL.Path)
			switch {
			case errors.Is(err, context.Canceled):
				// Client went away; nothing to answer.
			case errors.Is(err, context.DeadlineExceeded):
				l.Warn("upstream timeout", "error", err)
				writeJSONError(w, http.StatusGatewayTimeout, "Gateway Timeout")
			default:
				l.Error("upstream unavailable", "error", err)
				writeJSONError(w, http.StatusBadGateway, "Bad Gateway")
			}
		},
	}

	return &Forwarder{rp: rp, timeout: responseTimeout}
}

// Forward proxies the request to baseURL, stripping the first strip path
// segments. The overall exchange is bounded by the response timeout; client
// disconnects cancel the upstream call through the request context.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request, baseURL string, strip int, preserveHost bool) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		writeJSONError(w, http.StatusBadGateway, "Bad Gateway")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), f.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, targetKey{}, &target{base: u, strip: strip, preserveHost: preserveHost})

	f.rp.ServeHTTP(w, r.WithContext(ctx))
}

// StripSegments drops the first n path segments. It is also what route
// policy uses so that rules see the same path the upstream will.
func StripSegments(path string, n int) string {
	trimmed := strings.TrimPrefix(path, "/")
	parts := strings.SplitN(trimmed, "/", n+1)
	if len(parts) <= n {
		return "/"
	}
	return "/" + parts[n]
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
