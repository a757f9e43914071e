package model

import (
	"beacon/shared/model"
)

const (
	TableName  = "demo_requests"
	EntityName = "demo_request"

	FieldID              = "id"
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldCompanyName     = "company_name"
	FieldDescription     = "description"
	FieldCalendarEventID = "calendar_event_id"
	FieldStatus          = "status"
)

const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type DemoRequest struct {
	ID              string  `db:"id"`
	FullName        string  `db:"full_name"`
	Email           string  `db:"email"`
	CompanyName     *string `db:"company_name"`
	Description     *string `db:"description"`
	CalendarEventID *string `db:"calendar_event_id"`
	Status          string  `db:"status"`
	model.Metadata
}
