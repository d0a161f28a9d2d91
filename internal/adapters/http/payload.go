package http

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/labstack/echo/v4"

	"github.com/statefacts/core/internal/ports"
)

// Validation messages returned with 400 responses
const (
	MsgBodyNotObject     = "Request body must be a JSON object"
	MsgFunFactsRequired  = "State fun facts value required"
	MsgFunFactsNotArray  = "State fun facts value must be an array"
	MsgFunFactsNotString = "State fun facts values must be strings"
	MsgIndexRequired     = "State fun fact index value required"
	MsgIndexNotInteger   = "State fun fact index value must be an integer"
	MsgFunFactRequired   = "State fun fact value required"
	MsgFunFactNotString  = "State fun fact value must be a string"
)

// ValidationError names the first payload field that failed a check
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

type payload map[string]json.RawMessage

// bindPayload reads the request body as a JSON object. A body that is not
// JSON at all is treated as empty so the field checks report what is missing.
func bindPayload(c echo.Context) (payload, error) {
	body := payload{}
	err := (&echo.DefaultBinder{}).BindBody(c, &body)
	if errors.Is(err, echo.ErrUnsupportedMediaType) {
		return payload{}, nil
	}
	if err != nil {
		return nil, invalid(MsgBodyNotObject)
	}
	return body, nil
}

func (p payload) field(name string) (json.RawMessage, bool) {
	raw, ok := p[name]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// ParseAddFunFacts validates {funfacts: string[]}
func ParseAddFunFacts(c echo.Context) (ports.AddFunFactsRequest, error) {
	var req ports.AddFunFactsRequest

	body, err := bindPayload(c)
	if err != nil {
		return req, err
	}

	raw, ok := body.field("funfacts")
	if !ok {
		return req, invalid(MsgFunFactsRequired)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return req, invalid(MsgFunFactsNotArray)
	}

	req.FunFacts = make([]string, 0, len(items))
	for _, item := range items {
		var fact string
		if err := json.Unmarshal(item, &fact); err != nil || string(item) == "null" {
			return req, invalid(MsgFunFactsNotString)
		}
		req.FunFacts = append(req.FunFacts, fact)
	}

	return req, nil
}

// ParseUpdateFunFact validates {index: integer, funfact: string}
func ParseUpdateFunFact(c echo.Context) (ports.UpdateFunFactRequest, error) {
	var req ports.UpdateFunFactRequest

	body, err := bindPayload(c)
	if err != nil {
		return req, err
	}

	if req.Index, err = body.index(); err != nil {
		return req, err
	}

	raw, ok := body.field("funfact")
	if !ok {
		return req, invalid(MsgFunFactRequired)
	}
	if err := json.Unmarshal(raw, &req.FunFact); err != nil {
		return req, invalid(MsgFunFactNotString)
	}

	return req, nil
}

// ParseDeleteFunFact validates {index: integer}
func ParseDeleteFunFact(c echo.Context) (ports.DeleteFunFactRequest, error) {
	var req ports.DeleteFunFactRequest

	body, err := bindPayload(c)
	if err != nil {
		return req, err
	}

	req.Index, err = body.index()
	return req, err
}

func (p payload) index() (int, error) {
	raw, ok := p.field("index")
	if !ok {
		return 0, invalid(MsgIndexRequired)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || f != math.Trunc(f) {
		return 0, invalid(MsgIndexNotInteger)
	}

	// anything this large is out of range for any list anyway
	f = math.Max(math.Min(f, math.MaxInt32), math.MinInt32)
	return int(f), nil
}
