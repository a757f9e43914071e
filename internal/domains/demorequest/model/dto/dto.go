package dto

import (
	"github.com/google/uuid"

	"beacon/internal/domains/demorequest/model"
	"beacon/shared"
	gDto "beacon/shared/dto"
	"beacon/shared/form"
	gModel "beacon/shared/model"
	"beacon/shared/timezone"
)

const (
	// SourceModal is the compact booking modal: name and email only.
	SourceModal = "modal"
	// SourceContact is the contact page form, which additionally requires
	// company and message.
	SourceContact = "contact"
)

type SubmitDemoRequestRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

func (r *SubmitDemoRequestRequest) FormInput() form.Input {
	return form.Input{
		FullName:    r.FullName,
		Email:       r.Email,
		CompanyName: r.CompanyName,
		Description: r.Description,
	}
}

func (r *SubmitDemoRequestRequest) Profile() form.Profile {
	if r.Source == SourceContact {
		return form.ContactProfile
	}

	return form.BookingProfile
}

func (r *SubmitDemoRequestRequest) ToModel(user string) model.DemoRequest {
	return model.DemoRequest{
		ID:          uuid.NewString(),
		FullName:    r.FullName,
		Email:       r.Email,
		CompanyName: optional(r.CompanyName),
		Description: optional(r.Description),
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

type UpdateDemoRequestRequest struct {
	Status string `db:"status" json:"status" validate:"omitempty,oneof=pending scheduled completed cancelled"`
}

type DemoRequestResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	CompanyName     string `json:"company_name,omitempty"`
	Description     string `json:"description,omitempty"`
	CalendarEventID string `json:"calendar_event_id,omitempty"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *DemoRequestResponse) FromModel(mod model.DemoRequest) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.CompanyName = deref(mod.CompanyName)
	r.Description = deref(mod.Description)
	r.CalendarEventID = deref(mod.CalendarEventID)
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

type SubmitDemoRequestResponse struct {
	Request     DemoRequestResponse `json:"request"`
	MeetingLink string              `json:"meeting_link,omitempty"`
	Date        string              `json:"date,omitempty"`
	Time        string              `json:"time,omitempty"`
}

type GetDemoRequestsResponse struct {
	Requests  []DemoRequestResponse `json:"requests"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetDemoRequestsResponse) FromModels(models []model.DemoRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Requests = make([]DemoRequestResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}
