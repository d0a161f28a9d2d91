package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccepts(t *testing.T) {
	tests := []struct {
		header string
		typ    string
		want   bool
	}{
		{"", "json", true},
		{"*/*", "json", true},
		{"*/*", "html", true},
		{"application/json", "json", true},
		{"application/json", "html", false},
		{"application/*", "application/json", true},
		{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", "html", true},
		{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", "json", true},
		{"text/html;q=0.5, application/json", "json", true},
		{"text/plain", "json", false},
		{"text/*", "text", true},
		{"image/png", "html", false},
		{"garbage", "json", false},
	}

	for _, tt := range tests {
		t.Run(tt.header+"->"+tt.typ, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAccept, tt.header)
			}
			assert.Equal(t, tt.want, Accepts(req, tt.typ))
		})
	}
}

func TestNotFoundRenderer(t *testing.T) {
	render := func(r *NotFoundRenderer, method, accept string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(method, "/nowhere", nil)
		if accept != "" {
			req.Header.Set(echo.HeaderAccept, accept)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, r.Render(e.NewContext(req, rec)))
		return rec
	}

	withPage := &NotFoundRenderer{page: []byte("<h1>404</h1>")}
	withoutPage := NewNotFoundRenderer("")

	rec := render(withPage, http.MethodGet, "text/html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404</h1>")

	rec = render(withPage, http.MethodGet, "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"404 Not Found"}`, rec.Body.String())

	rec = render(withoutPage, http.MethodGet, "")
	assert.JSONEq(t, `{"error":"404 Not Found"}`, rec.Body.String())

	rec = render(withPage, http.MethodGet, "image/png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = render(withPage, http.MethodHead, "text/html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
