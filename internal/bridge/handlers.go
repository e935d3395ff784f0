package bridge

import (
	"fmt"
	"net/http"

	"ec4x_engine/internal/logging"
)

const moduleName = "bridge"

// NotFound logs and answers 404 for any request that matched no route.
func NotFound(log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Trace(logging.Warning, moduleName, fmt.Sprintf("no route for %q", r.URL))
		http.NotFound(w, r)
	}
}

// NotAllowed logs and answers 405 when a route matched but the verb did not.
func NotAllowed(log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Trace(logging.Warning, moduleName, fmt.Sprintf("method %q not allowed for %q", r.Method, r.URL))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// NoOp is the default handler for a route with nothing attached yet.
func NoOp(log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Trace(logging.Warning, moduleName, fmt.Sprintf("no-op handler for %q", r.URL))
	}
}

// WithSafetyNet wraps next with a panic recovery boundary so a single
// malformed request cannot take down the bridge's listener goroutine.
func WithSafetyNet(log logging.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Trace(logging.Error, moduleName, fmt.Sprintf("recovered from panic (err: %v)", err))
				http.Error(w, "unexpected error while processing request", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	}
}

func getSupportedMethods() map[string]bool {
	return map[string]bool{
		"GET": true, "HEAD": true, "POST": true, "PUT": true,
		"DELETE": true, "OPTIONS": true, "PATCH": true,
	}
}

func filterMethods(methods []string, log logging.Logger) []string {
	supported := getSupportedMethods()
	filtered := make([]string, 0, len(methods))
	for _, m := range methods {
		if !supported[m] {
			log.Trace(logging.Error, moduleName, fmt.Sprintf("filtering invalid HTTP method %q", m))
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}
