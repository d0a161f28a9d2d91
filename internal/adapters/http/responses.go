package http

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// MessageResponse carries a human-readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the structured 404 and 5xx body
type ErrorResponse struct {
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type CapitalResponse struct {
	State   string `json:"state"`
	Capital string `json:"capital"`
}

type NicknameResponse struct {
	State    string `json:"state"`
	Nickname string `json:"nickname"`
}

type PopulationResponse struct {
	State      string `json:"state"`
	Population int64  `json:"population"`
}

type AdmissionResponse struct {
	State    string `json:"state"`
	Admitted string `json:"admitted"`
}

type FunFactResponse struct {
	FunFact string `json:"funfact"`
}

// NotFoundRenderer answers unmatched routes. Browsers get the error page,
// JSON clients get {"error": "404 Not Found"}, anything else an empty 404.
type NotFoundRenderer struct {
	page []byte
}

// NewNotFoundRenderer loads the error page once. A missing page disables
// the HTML branch.
func NewNotFoundRenderer(pagePath string) *NotFoundRenderer {
	r := &NotFoundRenderer{}
	if pagePath == "" {
		return r
	}
	if page, err := os.ReadFile(pagePath); err == nil {
		r.page = page
	}
	return r
}

// Render writes the negotiated 404 response
func (r *NotFoundRenderer) Render(c echo.Context) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(http.StatusNotFound)
	}

	if len(r.page) > 0 && Accepts(c.Request(), "html") {
		return c.HTMLBlob(http.StatusNotFound, r.page)
	}

	if Accepts(c.Request(), "json") {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "404 Not Found"})
	}

	return c.NoContent(http.StatusNotFound)
}
