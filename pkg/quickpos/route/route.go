// Package route implements the app's route identifiers: slash-separated
// names with optional {param} segments, e.g. "kiosk_item_detail/{itemId}".
//
// Matching is exact per segment. A literal segment must be equal; a
// parameter segment captures any non-empty segment. There are no wildcards
// spanning several segments and no regular expressions.
package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingParam is returned by Build when a template parameter has no value.
var ErrMissingParam = errors.New("route: missing parameter")

// Route is a route template.
type Route string

// Params holds the values captured from a concrete path.
type Params map[string]string

func (r Route) String() string {
	return string(r)
}

// Name is the first segment, the part that identifies the screen.
func (r Route) Name() string {
	name, _, _ := strings.Cut(string(r), "/")
	return name
}

// HasParams reports whether the template contains any {param} segment.
func (r Route) HasParams() bool {
	for _, seg := range strings.Split(string(r), "/") {
		if _, ok := paramName(seg); ok {
			return true
		}
	}
	return false
}

// Match checks a concrete path against the template and returns captured values.
func (r Route) Match(path string) (Params, bool) {
	tmpl := strings.Split(string(r), "/")
	segs := strings.Split(path, "/")
	if len(tmpl) != len(segs) {
		return nil, false
	}

	var params Params
	for i, t := range tmpl {
		if name, ok := paramName(t); ok {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = Params{}
			}
			params[name] = segs[i]
			continue
		}
		if t != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// Build substitutes params into the template. Values may not contain a slash.
func (r Route) Build(params Params) (string, error) {
	tmpl := strings.Split(string(r), "/")
	out := make([]string, len(tmpl))
	for i, t := range tmpl {
		name, ok := paramName(t)
		if !ok {
			out[i] = t
			continue
		}
		v := params[name]
		if v == "" {
			return "", fmt.Errorf("%w %q in %s", ErrMissingParam, name, r)
		}
		if strings.Contains(v, "/") {
			return "", fmt.Errorf("route: parameter %q of %s contains a slash", name, r)
		}
		out[i] = v
	}
	return strings.Join(out, "/"), nil
}

// With is Build for the common single-parameter case. It panics on a
// template that does not take exactly that parameter, which is a
// programming error.
func (r Route) With(name, value string) string {
	path, err := r.Build(Params{name: value})
	if err != nil {
		panic(err)
	}
	return path
}

func paramName(seg string) (string, bool) {
	if len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// Table resolves concrete paths against a fixed set of templates.
type Table struct {
	routes []Route
}

// NewTable builds a table. Earlier routes win when several match.
func NewTable(routes ...Route) *Table {
	return &Table{routes: append([]Route(nil), routes...)}
}

// Resolve finds the template matching path.
func (t *Table) Resolve(path string) (Route, Params, bool) {
	for _, r := range t.routes {
		if params, ok := r.Match(path); ok {
			return r, params, true
		}
	}
	return "", nil, false
}

// Contains reports whether r is one of the table's templates.
func (t *Table) Contains(r Route) bool {
	for _, known := range t.routes {
		if known == r {
			return true
		}
	}
	return false
}

// Routes returns the templates in table order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}
