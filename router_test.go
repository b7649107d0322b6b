package trellis_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trellis-http/trellis"
)

func emptySet() *trellis.PipelineSet {
	return trellis.FinalizePipelineSet(trellis.NewPipelineSet())
}

func serve(router *trellis.Router, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouterEndToEnd(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			return c.Text("welcome")
		})
		route.Post("/api/submit").ToFunc(func(c *trellis.Context) error {
			c.SetStatus(http.StatusAccepted)
			return c.Text("submitted")
		})
	})

	rec := serve(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "welcome", rec.Body.String())

	rec = serve(router, http.MethodPost, "/api/submit")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = serve(router, http.MethodGet, "/api/submit")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(router, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterGetAlsoMatchesHead(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			return c.Text("ok")
		})
	})

	rec := serve(router, http.MethodHead, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterSamePathTwoMethods(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/widgets").ToFunc(func(c *trellis.Context) error {
			return c.Text("list")
		})
		route.Post("/widgets").ToFunc(func(c *trellis.Context) error {
			c.SetStatus(http.StatusCreated)
			return c.Text("created")
		})
	})

	rec := serve(router, http.MethodGet, "/widgets")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())

	rec = serve(router, http.MethodPost, "/widgets")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouterAllowHeaderAggregation(t *testing.T) {
	handler := func(c *trellis.Context) error { return c.Text("ok") }

	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/widgets").ToFunc(handler)
		route.Post("/widgets").ToFunc(handler)
	})

	rec := serve(router, http.MethodDelete, "/widgets")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	allowed := strings.Split(rec.Header().Get("Allow"), ", ")
	assert.ElementsMatch(t, []string{"GET", "HEAD", "POST"}, allowed)
}

func TestRouterDynamicSegments(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/users/:id").ToFunc(func(c *trellis.Context) error {
			return c.Text("user " + c.Param("id"))
		})
	})

	rec := serve(router, http.MethodGet, "/users/42")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user 42", rec.Body.String())

	rec = serve(router, http.MethodGet, "/users/abc")
	assert.Equal(t, "user abc", rec.Body.String())

	rec = serve(router, http.MethodGet, "/users")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodGet, "/users/42/extra")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterPipelineOrderAndSharing(t *testing.T) {
	var log []string
	marker := func(name string) trellis.Middleware {
		return func(next trellis.Handler) trellis.Handler {
			return func(c *trellis.Context) error {
				log = append(log, name)
				return next(c)
			}
		}
	}

	pipelines := trellis.NewPipelineSet()
	p1 := pipelines.Add(trellis.NewPipeline().Add(marker("p1")).Build())
	p2 := pipelines.Add(trellis.NewPipeline().Add(marker("p2")).Build())
	set := trellis.FinalizePipelineSet(pipelines)

	router := trellis.BuildRouter(trellis.Chain{p1, p2}, set, func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			log = append(log, "handler")
			return c.Text("ok")
		})
	})

	rec := serve(router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1", "p2", "handler"}, log)
}

func TestRouterPipelineShortCircuit(t *testing.T) {
	handlerRan := false

	veto := func(trellis.Handler) trellis.Handler {
		return func(c *trellis.Context) error {
			c.SetStatus(http.StatusForbidden)
			return c.Text("blocked")
		}
	}

	pipelines := trellis.NewPipelineSet()
	guard := pipelines.Add(trellis.NewPipeline().Add(veto).Build())
	set := trellis.FinalizePipelineSet(pipelines)

	router := trellis.BuildRouter(trellis.Chain{guard}, set, func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			handlerRan = true
			return c.Text("ok")
		})
	})

	rec := serve(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "blocked", rec.Body.String())
	assert.False(t, handlerRan)
}

func TestRouterFreshHandlerPerRequest(t *testing.T) {
	instances := 0

	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/").To(func() trellis.Handler {
			instances++
			count := 0
			return func(c *trellis.Context) error {
				count++
				return c.Text("ok")
			}
		})
	})

	serve(router, http.MethodGet, "/")
	serve(router, http.MethodGet, "/")
	assert.Equal(t, 2, instances)
}

func TestRouterStatusOverrides(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			return c.Text("ok")
		})
		route.HandleStatus(http.StatusNotFound, func(c *trellis.Context) error {
			return c.Text("custom not found")
		})
	})

	rec := serve(router, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom not found", rec.Body.String())

	// success path never touches the finalizer
	rec = serve(router, http.MethodGet, "/")
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterAbandonedContinuation(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/real").ToFunc(func(c *trellis.Context) error {
			return c.Text("ok")
		})
		route.Get("/ghost") // never finalized with To
	})

	rec := serve(router, http.MethodGet, "/ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterHandlerErrorBecomes500(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/boom").ToFunc(func(c *trellis.Context) error {
			return errors.New("boom")
		})
	})

	rec := serve(router, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouterExtractorFailureBecomes400(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/strict").
			WithQueryExtractor(func(c *trellis.Context) error {
				if c.Query("token") == "" {
					return errors.New("missing token")
				}
				return nil
			}).
			ToFunc(func(c *trellis.Context) error {
				return c.Text("ok")
			})
	})

	rec := serve(router, http.MethodGet, "/strict")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, http.MethodGet, "/strict?token=abc")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterScope(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Scope("/api", func(api *trellis.RouterBuilder) {
			api.Get("/health").ToFunc(func(c *trellis.Context) error {
				return c.Text("healthy")
			})
		})
	})

	rec := serve(router, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", rec.Body.String())
}

func TestRouterDelegation(t *testing.T) {
	sub := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/users/:uid").ToFunc(func(c *trellis.Context) error {
			return c.Text("tenant " + c.Param("tid") + " user " + c.Param("uid"))
		})
	})

	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Delegate("/tenants/:tid").ToRouter(sub)
	})

	rec := serve(router, http.MethodGet, "/tenants/acme/users/7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tenant acme user 7", rec.Body.String())

	// the nested router produces its own failures
	rec = serve(router, http.MethodGet, "/tenants/acme/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodPost, "/tenants/acme/users/7")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterRecoveryPipeline(t *testing.T) {
	pipelines := trellis.NewPipelineSet()
	safety := pipelines.Add(trellis.NewPipeline().Add(trellis.Recovery()).Build())
	set := trellis.FinalizePipelineSet(pipelines)

	router := trellis.BuildRouter(trellis.Chain{safety}, set, func(route *trellis.RouterBuilder) {
		route.Get("/panic").ToFunc(func(c *trellis.Context) error {
			panic("kaboom")
		})
	})

	rec := serve(router, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouterRequestIDPipeline(t *testing.T) {
	pipelines := trellis.NewPipelineSet()
	ids := pipelines.Add(trellis.NewPipeline().Add(trellis.RequestID()).Build())
	set := trellis.FinalizePipelineSet(pipelines)

	var seen string
	router := trellis.BuildRouter(trellis.Chain{ids}, set, func(route *trellis.RouterBuilder) {
		route.Get("/").ToFunc(func(c *trellis.Context) error {
			seen = trellis.RequestIDFrom(c)
			return c.Text("ok")
		})
	})

	rec := serve(router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(trellis.RequestIDHeader))
}

func TestRouterConcurrentRequests(t *testing.T) {
	router := trellis.BuildRouter(nil, emptySet(), func(route *trellis.RouterBuilder) {
		route.Get("/users/:id").ToFunc(func(c *trellis.Context) error {
			return c.Text(c.Param("id"))
		})
	})

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				id := []string{"alpha", "beta", "gamma", "delta"}[i%4]
				rec := serve(router, http.MethodGet, "/users/"+id)
				if rec.Body.String() != id {
					t.Errorf("got %q, want %q", rec.Body.String(), id)
					return
				}
			}
		}(i)
	}
	for i := 0; i < 16; i++ {
		<-done
	}
	close(done)
}
