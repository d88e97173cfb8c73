package model

import (
	"math"
	"regexp"

	"github.com/go-playground/validator"
)

var (
	imageURLPattern = regexp.MustCompile(`^https?://.+\..+$`)
	mapsURLPattern  = regexp.MustCompile(`^(https?://)?(maps\.google\.com/maps\?q=|maps\.app\.goo\.gl/).+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("imageurl", matchPattern(imageURLPattern))
	_ = v.RegisterValidation("mapsurl", matchPattern(mapsURLPattern))
	_ = v.RegisterValidation("clock", matchPattern(clockPattern))
	return v
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

type fieldRule struct {
	tag     string
	code    ValidationCode
	message string
}

var fieldRules = map[string]fieldRule{
	FieldImageURL:       {"imageurl", InvalidURL, "image_url must be an http(s) URL"},
	FieldLocalGoogleURL: {"mapsurl", InvalidURL, "local_google_url must be a Google Maps link"},
	FieldTitle:          {"min=5,max=100", InvalidLength, "title must be 5 to 100 characters"},
	FieldDescription:    {"min=1,max=1000", InvalidLength, "description must be 1 to 1000 characters"},
	FieldTime:           {"clock", InvalidTime, "time must be HH:MM (24h)"},
	FieldType:           {"required", MissingField, "type is required"},
	FieldPrice:          {"gte=0", InvalidPrice, "price must not be negative"},
}

func checkField(field string, value any) error {
	rule := fieldRules[field]
	if err := validate.Var(value, rule.tag); err != nil {
		return newValidationError(rule.code, field, rule.message)
	}
	return nil
}

func checkPayment(pay bool, price *float64) error {
	if pay && price == nil {
		return newValidationError(PriceRequired, FieldPrice, "price is required for paid events")
	}
	if !pay && price != nil {
		return newValidationError(PriceNotAllowed, FieldPrice, "price must not be given for free events")
	}
	if price == nil {
		return nil
	}
	if math.IsInf(*price, 0) || math.IsNaN(*price) {
		return newValidationError(InvalidPrice, FieldPrice, "price must be a finite number")
	}
	return checkField(FieldPrice, *price)
}

// ValidateCreate checks a full payload and returns the Event to persist.
// Rules run in a fixed order and the first violation is returned.
func ValidateCreate(req EventCreateRequest) (Event, error) {
	pay := req.Pay != nil && *req.Pay
	if err := checkPayment(pay, req.Price); err != nil {
		return Event{}, err
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{FieldImageURL, req.ImageURL},
		{FieldLocalGoogleURL, req.LocalGoogleURL},
		{FieldTitle, req.Title},
		{FieldDescription, req.Description},
		{FieldTime, req.Time},
	} {
		if err := checkField(f.name, f.value); err != nil {
			return Event{}, err
		}
	}

	date, err := NormalizeDate(req.Date)
	if err != nil {
		return Event{}, err
	}

	if err := checkField(FieldType, req.Type); err != nil {
		return Event{}, err
	}
	if req.Pay == nil {
		return Event{}, newValidationError(MissingField, FieldPay, "pay is required")
	}

	event := Event{
		ImageURL:       req.ImageURL,
		Title:          req.Title,
		Description:    req.Description,
		Date:           date,
		Time:           req.Time,
		Type:           req.Type,
		Pay:            pay,
		LocalGoogleURL: req.LocalGoogleURL,
	}
	if pay {
		price := *req.Price
		event.Price = &price
	}

	return event, nil
}

// ValidateUpdate checks the supplied fields of a partial payload. Payment
// consistency is judged on the incoming pay flag only: an absent flag counts
// as free, so a lone price is rejected.
func ValidateUpdate(req EventUpdateRequest) (EventPatch, error) {
	pay := req.Pay != nil && *req.Pay
	if err := checkPayment(pay, req.Price); err != nil {
		return EventPatch{}, err
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{FieldImageURL, req.ImageURL},
		{FieldLocalGoogleURL, req.LocalGoogleURL},
		{FieldTitle, req.Title},
		{FieldDescription, req.Description},
		{FieldTime, req.Time},
	} {
		if f.value == nil {
			continue
		}
		if err := checkField(f.name, *f.value); err != nil {
			return EventPatch{}, err
		}
	}

	patch := EventPatch{
		ImageURL:       req.ImageURL,
		Title:          req.Title,
		Description:    req.Description,
		Time:           req.Time,
		Type:           req.Type,
		Pay:            req.Pay,
		LocalGoogleURL: req.LocalGoogleURL,
	}

	if req.Date != nil {
		date, err := NormalizeDate(*req.Date)
		if err != nil {
			return EventPatch{}, err
		}
		patch.Date = &date
	}

	if req.Type != nil {
		if err := checkField(FieldType, *req.Type); err != nil {
			return EventPatch{}, err
		}
	}

	if req.Price != nil {
		price := *req.Price
		patch.Price = &price
	}
	if req.Pay != nil && !*req.Pay {
		patch.ClearPrice = true
	}

	return patch, nil
}
