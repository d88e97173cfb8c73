package apis

import (
	"context"
	"net/http"

	"xote-events-backend/cmd/xote-events/model"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckAPI struct {
	store Pinger
}

func NewHealthCheckAPI(store Pinger) *HealthCheckAPI {
	return &HealthCheckAPI{
		store: store,
	}
}

func (a *HealthCheckAPI) Setup(g *echo.Group) {
	g.GET("/healthz", a.healthCheck)
}

func (a *HealthCheckAPI) healthCheck(c echo.Context) error {

	err := a.store.Ping(c.Request().Context())
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "healthy",
		},
	)
}
