package dto

import (
	"github.com/google/uuid"

	"beacon/internal/domains/contact/model"
	"beacon/shared"
	gDto "beacon/shared/dto"
	"beacon/shared/form"
	gModel "beacon/shared/model"
	"beacon/shared/timezone"
)

type CreateContactMessageRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Message     string `json:"message"`
}

func (r *CreateContactMessageRequest) FormInput() form.Input {
	return form.Input{
		FullName:    r.FullName,
		Email:       r.Email,
		CompanyName: r.CompanyName,
		Description: r.Message,
	}
}

func (r *CreateContactMessageRequest) ToModel(user string) model.ContactMessage {
	return model.ContactMessage{
		ID:          uuid.NewString(),
		FullName:    r.FullName,
		Email:       r.Email,
		CompanyName: r.CompanyName,
		Message:     r.Message,
		Status:      model.StatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateContactMessageRequest struct {
	Status string `db:"status" json:"status" validate:"omitempty,oneof=new read replied"`
}

type ContactMessageResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *ContactMessageResponse) FromModel(mod model.ContactMessage) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.CompanyName = mod.CompanyName
	r.Message = mod.Message
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetContactMessagesResponse struct {
	Messages  []ContactMessageResponse `json:"messages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetContactMessagesResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]ContactMessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}
