package dto

import (
	"strings"

	"github.com/google/uuid"

	"beacon/internal/domains/newsletter/model"
	"beacon/shared"
	gDto "beacon/shared/dto"
	gModel "beacon/shared/model"
	"beacon/shared/timezone"
)

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SubscribeRequest) ToModel(user string) model.Subscriber {
	return model.Subscriber{
		ID:     uuid.NewString(),
		Email:  r.Email,
		Status: model.StatusSubscribed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type SubscriberResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
	gDto.Metadata
}

func (r *SubscriberResponse) FromModel(mod model.Subscriber) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetSubscribersResponse struct {
	Subscribers []SubscriberResponse `json:"subscribers"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetSubscribersResponse) FromModels(models []model.Subscriber, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Subscribers = make([]SubscriberResponse, len(models))
	for i, mod := range models {
		r.Subscribers[i].FromModel(mod)
	}
}
