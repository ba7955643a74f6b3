package internal

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultAPIPrefix = "/api"

// Controller is dispatched by convention. Name is matched case-insensitively
// against the {controller} path segment.
type Controller interface {
	Name() string
}

// Namespaced controllers are additionally reachable under
// "/api/{namespace}/{controller}" with RoutingNamespace.
type Namespaced interface {
	Controller
	Namespace() string
}

// Verb interfaces. id is "" when the path has no {id} segment.
type (
	Getter interface {
		Get(c Context, id string) error
	}
	Poster interface {
		Post(c Context, id string) error
	}
	Putter interface {
		Put(c Context, id string) error
	}
	Deleter interface {
		Delete(c Context, id string) error
	}
)

type conventionalRouter struct {
	strategy RoutingStrategy
	// plain holds controllers addressed by name only.
	plain map[string]Controller
	// namespaced holds "namespace/name" keys; byName indexes the same
	// controllers by bare name for unqualified requests.
	namespaced map[string]Controller
	byName     map[string][]Controller
}

func newConventionalRouter(strategy RoutingStrategy, controllers []Controller) *conventionalRouter {
	cr := &conventionalRouter{
		strategy:   strategy,
		plain:      make(map[string]Controller, len(controllers)),
		namespaced: make(map[string]Controller),
		byName:     make(map[string][]Controller),
	}

	for _, c := range controllers {
		name := strings.ToLower(c.Name())
		if name == "" {
			panic("authgate: controller with empty name")
		}

		if ns, ok := c.(Namespaced); ok && strategy == RoutingNamespace && ns.Namespace() != "" {
			key := strings.ToLower(ns.Namespace()) + "/" + name
			if _, dup := cr.namespaced[key]; dup {
				panic(fmt.Sprintf("authgate: duplicate controller %q", key))
			}
			cr.namespaced[key] = c
			cr.byName[name] = append(cr.byName[name], c)
			continue
		}

		if _, dup := cr.plain[name]; dup {
			panic(fmt.Sprintf("authgate: duplicate controller %q", name))
		}
		cr.plain[name] = c
	}
	return cr
}

// resolve maps the path segments after the prefix to a controller and id.
func (cr *conventionalRouter) resolve(segments []string) (Controller, string, error) {
	switch len(segments) {
	case 1:
		c, err := cr.lookup(segments[0])
		return c, "", err
	case 2:
		if c, ok := cr.namespaced[strings.ToLower(segments[0]+"/"+segments[1])]; ok {
			return c, "", nil
		}
		c, err := cr.lookup(segments[0])
		return c, segments[1], err
	case 3:
		if c, ok := cr.namespaced[strings.ToLower(segments[0]+"/"+segments[1])]; ok {
			return c, segments[2], nil
		}
	}
	return nil, "", ErrNotFound("")
}

// lookup resolves an unqualified name. A plain controller wins; otherwise the
// name must identify exactly one namespaced controller.
func (cr *conventionalRouter) lookup(name string) (Controller, error) {
	name = strings.ToLower(name)
	if c, ok := cr.plain[name]; ok {
		return c, nil
	}
	switch matches := cr.byName[name]; len(matches) {
	case 0:
		return nil, ErrNotFound("")
	case 1:
		return matches[0], nil
	default:
		return nil, ErrConflict("multiple controllers match", WithDetail("qualify the request with a namespace"))
	}
}

func (cr *conventionalRouter) dispatch(c Context) error {
	segments := splitPath(chi.URLParam(c.Request(), "*"))
	ctrl, id, err := cr.resolve(segments)
	if err != nil {
		return err
	}

	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		if g, ok := ctrl.(Getter); ok {
			return g.Get(c, id)
		}
	case http.MethodPost:
		if p, ok := ctrl.(Poster); ok {
			return p.Post(c, id)
		}
	case http.MethodPut:
		if p, ok := ctrl.(Putter); ok {
			return p.Put(c, id)
		}
	case http.MethodDelete:
		if d, ok := ctrl.(Deleter); ok {
			return d.Delete(c, id)
		}
	}

	c.SetHeader("Allow", strings.Join(allowedMethods(ctrl), ", "))
	return ErrMethodNotAllowed("")
}

func allowedMethods(ctrl Controller) []string {
	var m []string
	if _, ok := ctrl.(Getter); ok {
		m = append(m, http.MethodGet, http.MethodHead)
	}
	if _, ok := ctrl.(Poster); ok {
		m = append(m, http.MethodPost)
	}
	if _, ok := ctrl.(Putter); ok {
		m = append(m, http.MethodPut)
	}
	if _, ok := ctrl.(Deleter); ok {
		m = append(m, http.MethodDelete)
	}
	return m
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
