package apis

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"xote-events-backend/cmd/xote-events/model"
	"xote-events-backend/cmd/xote-events/service"

	"github.com/labstack/echo/v4"
)

type IEventService interface {
	ListAll(ctx context.Context) (service.ListResult, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByPaymentType(ctx context.Context, kind string) (service.ListResult, error)
	ListPaid(ctx context.Context) (service.ListResult, error)
	ListFree(ctx context.Context) (service.ListResult, error)
	ListByPriceAsc(ctx context.Context) (service.ListResult, error)
	ListByPriceDesc(ctx context.Context) (service.ListResult, error)
	ListByDateAsc(ctx context.Context, startDate, endDate string) (service.ListResult, error)
	ListByDateDesc(ctx context.Context, startDate, endDate string) (service.ListResult, error)
	ListByType(ctx context.Context, eventType string) (service.ListResult, error)
	ListRecent(ctx context.Context, limit string) (service.ListResult, error)
	Create(ctx context.Context, req model.EventCreateRequest) (*model.Event, error)
	Update(ctx context.Context, id string, req model.EventUpdateRequest) (*model.Event, error)
	DeleteByID(ctx context.Context, id string) (*model.Event, error)
	DeleteAll(ctx context.Context) (int64, error)
	Import(ctx context.Context, rows []model.EventCSV) (service.ImportResult, error)
}

type EventAPI struct {
	events IEventService
	logger *slog.Logger
	debug  bool
}

func NewEventAPI(events IEventService, logger *slog.Logger, debug bool) *EventAPI {

	return &EventAPI{
		events: events,
		logger: logger,
		debug:  debug,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/get", a.listEvents)
	g.GET("/get/:id", a.getEvent)
	g.GET("/get/type/:eventType", a.listEventsByType)
	g.GET("/recent", a.listRecentEvents)
	g.GET("/payment/:type", a.listEventsByPaymentType)
	g.GET("/paid", a.listPaidEvents)
	g.GET("/free", a.listFreeEvents)
	g.GET("/paid/asc", a.listEventsByPriceAsc)
	g.GET("/paid/desc", a.listEventsByPriceDesc)
	g.GET("/date/asc", a.listEventsByDateAsc)
	g.GET("/date/desc", a.listEventsByDateDesc)
	g.POST("/post", a.createEvent)
	g.PUT("/put/:id", a.updateEvent)
	g.DELETE("/delete/:id", a.deleteEvent)
	g.DELETE("/deleteAll", a.deleteAllEvents)
	g.POST("/import", a.importEvents)
	g.GET("/export", a.exportEvents)
}

func (a *EventAPI) listEvents(c echo.Context) error {
	result, err := a.events.ListAll(c.Request().Context())
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByPaymentType(c echo.Context) error {
	result, err := a.events.ListByPaymentType(c.Request().Context(), c.Param("type"))
	return a.list(c, result, err)
}

func (a *EventAPI) listPaidEvents(c echo.Context) error {
	result, err := a.events.ListPaid(c.Request().Context())
	return a.list(c, result, err)
}

func (a *EventAPI) listFreeEvents(c echo.Context) error {
	result, err := a.events.ListFree(c.Request().Context())
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByPriceAsc(c echo.Context) error {
	result, err := a.events.ListByPriceAsc(c.Request().Context())
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByPriceDesc(c echo.Context) error {
	result, err := a.events.ListByPriceDesc(c.Request().Context())
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByDateAsc(c echo.Context) error {
	result, err := a.events.ListByDateAsc(
		c.Request().Context(),
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
	)
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByDateDesc(c echo.Context) error {
	result, err := a.events.ListByDateDesc(
		c.Request().Context(),
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
	)
	return a.list(c, result, err)
}

func (a *EventAPI) listEventsByType(c echo.Context) error {
	result, err := a.events.ListByType(c.Request().Context(), c.Param("eventType"))
	return a.list(c, result, err)
}

func (a *EventAPI) listRecentEvents(c echo.Context) error {
	result, err := a.events.ListRecent(c.Request().Context(), c.QueryParam("limit"))
	return a.list(c, result, err)
}

func (a *EventAPI) getEvent(c echo.Context) error {

	event, err := a.events.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	var req model.EventCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err := a.events.Create(c.Request().Context(), req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "event created",
			Data:    event,
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	var req model.EventUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err := a.events.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "event updated",
			Data:    event,
		},
	)
}

func (a *EventAPI) deleteEvent(c echo.Context) error {

	event, err := a.events.DeleteByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "event deleted",
			Data:    event,
		},
	)
}

func (a *EventAPI) deleteAllEvents(c echo.Context) error {

	n, err := a.events.DeleteAll(c.Request().Context())
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "all events deleted",
			Data:    model.DeletePayload{DeletedCount: n},
		},
	)
}

func (a *EventAPI) list(c echo.Context, result service.ListResult, err error) error {
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.ListPayload{
				Items: result.Items,
				Count: result.Count,
			},
		},
	)
}

// fail maps service errors to responses: validation 400, not found 404,
// anything else 500.
func (a *EventAPI) fail(c echo.Context, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: verr.Message,
				Data:    verr,
			},
		)
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(
			http.StatusNotFound,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	a.logger.Error("event request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)

	return c.JSON(
		http.StatusInternalServerError,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}
