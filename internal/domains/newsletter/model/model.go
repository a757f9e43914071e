package model

import (
	gModel "beacon/shared/model"
)

const (
	TableName  = "newsletter_subscribers"
	EntityName = "newsletter_subscriber"

	FieldID     = "id"
	FieldEmail  = "email"
	FieldStatus = "status"

	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID     string `db:"id" json:"id"`
	Email  string `db:"email" json:"email"`
	Status string `db:"status" json:"status"`
	gModel.Metadata
}
