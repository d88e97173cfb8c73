package model

import (
	"fmt"
	"strconv"
	"strings"
)

// EventCSV is one row of a bulk import or export file.
type EventCSV struct {
	ImageURL       string `csv:"image_url"`
	Title          string `csv:"title"`
	Description    string `csv:"description"`
	Date           string `csv:"date"`
	Time           string `csv:"time"`
	Type           string `csv:"type"`
	Pay            string `csv:"pay"`
	Price          string `csv:"price"`
	LocalGoogleURL string `csv:"local_google_url"`
}

// CreateRequest converts a row. Empty pay/price cells are treated as absent.
func (r EventCSV) CreateRequest() (EventCreateRequest, error) {
	req := EventCreateRequest{
		ImageURL:       r.ImageURL,
		Title:          r.Title,
		Description:    r.Description,
		Date:           r.Date,
		Time:           r.Time,
		Type:           r.Type,
		LocalGoogleURL: r.LocalGoogleURL,
	}

	if s := strings.TrimSpace(r.Pay); s != "" {
		pay, err := strconv.ParseBool(s)
		if err != nil {
			return EventCreateRequest{}, newValidationError(MissingField, FieldPay, fmt.Sprintf("pay must be true or false, got %q", s))
		}
		req.Pay = &pay
	}

	if s := strings.TrimSpace(r.Price); s != "" {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return EventCreateRequest{}, newValidationError(InvalidPrice, FieldPrice, "price must be a number")
		}
		req.Price = &price
	}

	return req, nil
}

func NewEventCSV(e Event) EventCSV {
	row := EventCSV{
		ImageURL:       e.ImageURL,
		Title:          e.Title,
		Description:    e.Description,
		Date:           FormatDate(e.Date),
		Time:           e.Time,
		Type:           e.Type,
		Pay:            strconv.FormatBool(e.Pay),
		LocalGoogleURL: e.LocalGoogleURL,
	}
	if e.Price != nil {
		row.Price = strconv.FormatFloat(*e.Price, 'f', -1, 64)
	}
	return row
}
