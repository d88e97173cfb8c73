package model

import "time"

type Event struct {
	ID             string    `gorm:"column:id;primaryKey" bson:"_id" json:"id"`
	ImageURL       string    `gorm:"column:image_url" bson:"image_url" json:"image_url"`
	Title          string    `gorm:"column:title" bson:"title" json:"title"`
	Description    string    `gorm:"column:description" bson:"description" json:"description"`
	Date           time.Time `gorm:"column:date" bson:"date" json:"date"`
	Time           string    `gorm:"column:time" bson:"time" json:"time"`
	Type           string    `gorm:"column:type" bson:"type" json:"type"`
	Pay            bool      `gorm:"column:pay" bson:"pay" json:"pay"`
	Price          *float64  `gorm:"column:price" bson:"price,omitempty" json:"price,omitempty"`
	LocalGoogleURL string    `gorm:"column:local_google_url" bson:"local_google_url" json:"local_google_url"`
	CreatedAt      time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" bson:"updated_at" json:"updated_at"`
}

func (m *Event) TableName() string {
	return "events"
}

// Column names shared by every storage backend.
const (
	FieldID             = "id"
	FieldImageURL       = "image_url"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldType           = "type"
	FieldPay            = "pay"
	FieldPrice          = "price"
	FieldLocalGoogleURL = "local_google_url"
	FieldCreatedAt      = "created_at"
	FieldUpdatedAt      = "updated_at"
)

// EventPatch is a validated partial update. Nil fields are left untouched.
type EventPatch struct {
	ImageURL       *string
	Title          *string
	Description    *string
	Date           *time.Time
	Time           *string
	Type           *string
	Pay            *bool
	Price          *float64
	LocalGoogleURL *string

	// ClearPrice removes the stored price; set when pay=false is supplied.
	ClearPrice bool
}

func (p EventPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields renders the patch as a column -> value map. A cleared price maps to nil.
func (p EventPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.ImageURL != nil {
		fields[FieldImageURL] = *p.ImageURL
	}
	if p.Title != nil {
		fields[FieldTitle] = *p.Title
	}
	if p.Description != nil {
		fields[FieldDescription] = *p.Description
	}
	if p.Date != nil {
		fields[FieldDate] = *p.Date
	}
	if p.Time != nil {
		fields[FieldTime] = *p.Time
	}
	if p.Type != nil {
		fields[FieldType] = *p.Type
	}
	if p.Pay != nil {
		fields[FieldPay] = *p.Pay
	}
	if p.Price != nil {
		fields[FieldPrice] = *p.Price
	} else if p.ClearPrice {
		fields[FieldPrice] = nil
	}
	if p.LocalGoogleURL != nil {
		fields[FieldLocalGoogleURL] = *p.LocalGoogleURL
	}
	return fields
}

// Apply merges the patch onto a copy of e.
func (p EventPatch) Apply(e Event) Event {
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Pay != nil {
		e.Pay = *p.Pay
	}
	if p.Price != nil {
		price := *p.Price
		e.Price = &price
	} else if p.ClearPrice {
		e.Price = nil
	}
	if p.LocalGoogleURL != nil {
		e.LocalGoogleURL = *p.LocalGoogleURL
	}
	return e
}
