package bridge

import (
	"context"
	"net/http"

	"ec4x_engine/internal/logging"
)

type paramsKey struct{}

// PathParam returns a named path variable captured by the matched route
// (e.g. "houseId" for a route registered as "/state/{houseId}").
func PathParam(r *http.Request, name string) string {
	params, _ := r.Context().Value(paramsKey{}).(map[string]string)
	return params[name]
}

// Router dispatches requests to the best-matching registered Route,
// falling back to NotFound/NotAllowed handlers. Grounded on the teacher's
// `dispatcher.Router` (pkg/dispatcher/router.go), generalized with named
// path-parameter capture for the bridge's `/state/{houseId}`-style routes.
type Router struct {
	notFoundHandler         http.Handler
	methodNotAllowedHandler http.Handler
	routes                  []*Route
	log                     logging.Logger
}

// NewRouter creates an empty router with default not-found/not-allowed handlers.
func NewRouter(log logging.Logger) *Router {
	return &Router{
		notFoundHandler:         NotFound(log),
		methodNotAllowedHandler: NotAllowed(log),
		log:                     log,
	}
}

// HandleFunc registers path with a handler and returns the Route so verbs
// can be chained on: router.HandleFunc(path, f).Methods("GET").
func (r *Router) HandleFunc(path string, f http.HandlerFunc) *Route {
	route := NewRoute(path, r.log)
	route.HandlerFunc(f)
	r.routes = append(r.routes, route)
	return route
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	bestMatch := matching(notFound)
	var best routeMatch

	for _, route := range r.routes {
		m := route.match(req)
		if m.match == matched {
			best = m
			bestMatch = matched
			break
		}
		if m.match == methodNotAllowed && bestMatch != matched {
			bestMatch = methodNotAllowed
		}
	}

	switch bestMatch {
	case matched:
		ctx := context.WithValue(req.Context(), paramsKey{}, best.params)
		best.handler.ServeHTTP(w, req.WithContext(ctx))
	case methodNotAllowed:
		r.methodNotAllowedHandler.ServeHTTP(w, req)
	default:
		r.notFoundHandler.ServeHTTP(w, req)
	}
}
