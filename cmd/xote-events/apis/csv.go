package apis

import (
	"net/http"

	"xote-events-backend/cmd/xote-events/model"

	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
)

func (a *EventAPI) importEvents(c echo.Context) error {

	ctx := c.Request().Context()

	csvfile, err := c.FormFile("csvfile")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	cf, err := csvfile.Open()
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	defer cf.Close()

	var rows []model.EventCSV
	err = gocsv.Unmarshal(cf, &rows)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if a.debug {
		godump.Dump(rows)
	}

	result, err := a.events.Import(ctx, rows)
	if err != nil {
		return a.fail(c, err)
	}

	status := http.StatusCreated
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	return c.JSON(
		status,
		model.BaseResponse{
			Message: "import finished",
			Data:    result,
		},
	)
}

func (a *EventAPI) exportEvents(c echo.Context) error {

	result, err := a.events.ListAll(c.Request().Context())
	if err != nil {
		return a.fail(c, err)
	}

	rows := make([]model.EventCSV, 0, len(result.Items))
	for _, e := range result.Items {
		rows = append(rows, model.NewEventCSV(e))
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return a.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out)
}
