package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// Lookup and fun fact messages
const (
	MsgInvalidState = "Invalid state abbreviation parameter"
	msgNoFunFacts   = "No Fun Facts found for %s"
	msgNoFunFactAt  = "No Fun Fact found at that index for %s"
	msgConflict     = "Fun facts for %s were modified concurrently, retry"
)

// StateHandler handles /states requests
type StateHandler struct {
	catalog  ports.StateCatalog
	funFacts ports.FunFactService
	logger   *logger.Logger
}

// NewStateHandler creates a new state handler
func NewStateHandler(catalog ports.StateCatalog, funFacts ports.FunFactService, logger *logger.Logger) *StateHandler {
	return &StateHandler{
		catalog:  catalog,
		funFacts: funFacts,
		logger:   logger.WithComponent("state_handler"),
	}
}

// StateLookup resolves the :state path parameter and attaches the state to
// the request context. Unknown codes stop the chain with a 404.
func (h *StateHandler) StateLookup(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state, err := h.catalog.Get(c.Param("state"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, MsgInvalidState)
		}

		req := c.Request()
		c.SetRequest(req.WithContext(WithState(req.Context(), state)))
		return next(c)
	}
}

// ListStates godoc
// @Summary List states
// @Description List every state, optionally filtered by contiguity
// @Tags states
// @Produce json,plain
// @Param contig query string false "true excludes AK and HI, false returns only AK and HI"
// @Success 200 {array} entities.State
// @Router /states [get]
func (h *StateHandler) ListStates(c echo.Context) error {
	filter := entities.ParseContiguityFilter(c.QueryParam("contig"))
	states := h.catalog.List(filter)

	if Accepts(c.Request(), "json") {
		return c.JSON(http.StatusOK, states)
	}

	data, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("encode states: %w", err)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, data)
}

// GetState godoc
// @Summary Get a state
// @Tags states
// @Produce json
// @Param state path string true "Two-letter state code"
// @Success 200 {object} entities.State
// @Failure 404 {object} MessageResponse
// @Router /states/{state} [get]
func (h *StateHandler) GetState(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// GetCapital returns {state, capital}
func (h *StateHandler) GetCapital(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CapitalResponse{State: state.Name, Capital: state.CapitalCity})
}

// GetNickname returns {state, nickname}
func (h *StateHandler) GetNickname(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NicknameResponse{State: state.Name, Nickname: state.Nickname})
}

// GetPopulation returns {state, population}
func (h *StateHandler) GetPopulation(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PopulationResponse{
		State:      state.Name,
		Population: state.Population,
	})
}

// GetAdmission returns {state, admitted}
func (h *StateHandler) GetAdmission(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AdmissionResponse{State: state.Name, Admitted: state.AdmissionDate})
}

// GetRandomFunFact godoc
// @Summary Get a random fun fact
// @Tags funfacts
// @Produce json
// @Param state path string true "Two-letter state code"
// @Success 200 {object} FunFactResponse
// @Failure 404 {object} MessageResponse
// @Router /states/{state}/funfact [get]
func (h *StateHandler) GetRandomFunFact(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}

	fact, err := h.funFacts.RandomFunFact(state.Code)
	if err != nil {
		return h.funFactError(c, state, err)
	}

	return c.JSON(http.StatusOK, FunFactResponse{FunFact: fact})
}

// CreateFunFacts godoc
// @Summary Append fun facts
// @Tags funfacts
// @Accept json
// @Produce json
// @Param state path string true "Two-letter state code"
// @Param request body ports.AddFunFactsRequest true "Facts to append"
// @Success 201 {object} entities.FunFacts
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /states/{state}/funfact [post]
func (h *StateHandler) CreateFunFacts(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}

	req, err := ParseAddFunFacts(c)
	if err != nil {
		return badRequest(err)
	}

	record, err := h.funFacts.AddFunFacts(c.Request().Context(), state.Code, req)
	if err != nil {
		return h.funFactError(c, state, err)
	}

	return c.JSON(http.StatusCreated, record)
}

// UpdateFunFact godoc
// @Summary Replace a fun fact
// @Tags funfacts
// @Accept json
// @Produce json
// @Param state path string true "Two-letter state code"
// @Param request body ports.UpdateFunFactRequest true "1-based index and replacement"
// @Success 200 {object} entities.FunFacts
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /states/{state}/funfact [patch]
func (h *StateHandler) UpdateFunFact(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}

	req, err := ParseUpdateFunFact(c)
	if err != nil {
		return badRequest(err)
	}

	record, err := h.funFacts.UpdateFunFact(c.Request().Context(), state.Code, req)
	if err != nil {
		return h.funFactError(c, state, err)
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteFunFact godoc
// @Summary Remove a fun fact
// @Tags funfacts
// @Accept json
// @Produce json
// @Param state path string true "Two-letter state code"
// @Param request body ports.DeleteFunFactRequest true "1-based index"
// @Success 200 {object} entities.FunFacts
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /states/{state}/funfact [delete]
func (h *StateHandler) DeleteFunFact(c echo.Context) error {
	state, err := stateFrom(c)
	if err != nil {
		return err
	}

	req, err := ParseDeleteFunFact(c)
	if err != nil {
		return badRequest(err)
	}

	record, err := h.funFacts.DeleteFunFact(c.Request().Context(), state.Code, req)
	if err != nil {
		return h.funFactError(c, state, err)
	}

	return c.JSON(http.StatusOK, record)
}

func (h *StateHandler) funFactError(c echo.Context, state entities.State, err error) error {
	switch {
	case errors.Is(err, entities.ErrStateNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgInvalidState)
	case errors.Is(err, entities.ErrNoFunFacts):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(msgNoFunFacts, state.Name))
	case errors.Is(err, entities.ErrFunFactIndexOutOfRange):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(msgNoFunFactAt, state.Name))
	case errors.Is(err, entities.ErrVersionConflict):
		h.logger.WithStateCode(state.Code).
			WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
			Warn("Fun facts write gave up after conflicts")
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf(msgConflict, state.Name))
	default:
		// storage failures surface as 500 through the error handler
		return err
	}
}

func stateFrom(c echo.Context) (entities.State, error) {
	state, ok := StateFromContext(c.Request().Context())
	if !ok {
		return entities.State{}, errors.New("state lookup middleware not applied")
	}
	return state, nil
}

func badRequest(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
