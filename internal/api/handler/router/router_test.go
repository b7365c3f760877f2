package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouterAppliesMiddlewaresInOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/customers/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		}),
		Middlewares: []func(http.Handler) http.Handler{mark("primeiro"), mark("segundo")},
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/customers/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"primeiro", "segundo", "abc"}, order)
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	rt := New(WithRoutes(Route{
		Path:    "/v1/orders",
		Method:  http.MethodPost,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inexistente", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
