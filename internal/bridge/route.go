package bridge

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"ec4x_engine/internal/logging"
)

// matching is the possible outcome of attempting to match a request
// against a single route.
type matching int

const (
	methodNotAllowed matching = iota
	notFound
	matchedPartial
	matched
)

// Route is a single path pattern, split on '/' into per-segment regular
// expressions so that path variables (e.g. `{houseId}`) can be captured,
// paired with the HTTP verbs and handler it serves. Grounded on the
// teacher's `dispatcher.Route` (pkg/dispatcher/route.go).
type Route struct {
	methods map[string]bool
	elems   []*regexp.Regexp
	names   []string
	handler http.Handler
	log     logging.Logger
}

var ErrRouteNotValid = fmt.Errorf("invalid expression provided for route")

func buildRouteElements(path string) ([]*regexp.Regexp, []string, error) {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return []*regexp.Regexp{}, []string{}, nil
	}

	tokens := strings.Split(path, "/")
	elems := make([]*regexp.Regexp, 0, len(tokens))
	names := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}") {
			names = append(names, strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}"))
			elems = append(elems, regexp.MustCompile(`^[^/]+$`))
			continue
		}
		names = append(names, "")
		exp, err := regexp.Compile("^" + regexp.QuoteMeta(token) + "$")
		if err != nil {
			return nil, nil, ErrRouteNotValid
		}
		elems = append(elems, exp)
	}

	return elems, names, nil
}

// NewRoute creates a route bound to path with a no-op handler; panics if
// path cannot be compiled (a programmer error in a route table literal).
func NewRoute(path string, log logging.Logger) *Route {
	elems, names, err := buildRouteElements(path)
	if err != nil {
		log.Trace(logging.Error, "route", fmt.Sprintf("unable to build route tokens for %q (err: %v)", path, err))
		panic(ErrRouteNotValid)
	}

	return &Route{
		methods: make(map[string]bool),
		elems:   elems,
		names:   names,
		handler: http.HandlerFunc(NoOp(log)),
		log:     log,
	}
}

// Methods registers the verbs this route answers, upper-cased.
func (r *Route) Methods(methods ...string) *Route {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	for _, m := range filterMethods(upper, r.log) {
		r.methods[m] = true
	}
	return r
}

// HandlerFunc attaches the route's processing function.
func (r *Route) HandlerFunc(f http.HandlerFunc) *Route {
	r.handler = f
	return r
}

func (r *Route) Handler() http.Handler { return r.handler }

type routeMatch struct {
	handler http.Handler
	match   matching
	length  int
	params  map[string]string
}

func (r *Route) match(req *http.Request) routeMatch {
	path := req.URL.Path
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")

	var tokens []string
	if path != "" {
		tokens = strings.Split(path, "/")
	}

	if len(r.elems) > len(tokens) {
		return routeMatch{match: notFound}
	}
	if len(r.elems) == 0 && len(tokens) != 0 {
		return routeMatch{match: notFound}
	}

	params := make(map[string]string)
	length := 0
	for id := 0; id < len(r.elems); id++ {
		if !r.elems[id].MatchString(tokens[id]) {
			return routeMatch{match: notFound}
		}
		if r.names[id] != "" {
			params[r.names[id]] = tokens[id]
		}
		length++
	}

	if length != len(tokens) {
		return routeMatch{match: notFound}
	}

	if !r.methods[req.Method] {
		return routeMatch{match: methodNotAllowed, length: length}
	}

	return routeMatch{handler: r.handler, match: matched, length: length, params: params}
}
