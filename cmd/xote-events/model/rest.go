package model

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type ListPayload struct {
	Items []Event `json:"items"`
	Count int     `json:"count"`
}

type DeletePayload struct {
	DeletedCount int64 `json:"deleted_count"`
}

type EventCreateRequest struct {
	ImageURL       string   `json:"image_url"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Type           string   `json:"type"`
	Pay            *bool    `json:"pay"`
	Price          *float64 `json:"price"`
	LocalGoogleURL string   `json:"local_google_url"`
}

// EventUpdateRequest carries only the attributes a client chose to replace.
type EventUpdateRequest struct {
	ImageURL       *string  `json:"image_url"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Date           *string  `json:"date"`
	Time           *string  `json:"time"`
	Type           *string  `json:"type"`
	Pay            *bool    `json:"pay"`
	Price          *float64 `json:"price"`
	LocalGoogleURL *string  `json:"local_google_url"`
}
