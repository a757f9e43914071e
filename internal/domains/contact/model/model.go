package model

import (
	gModel "beacon/shared/model"
)

const (
	TableName  = "contact_messages"
	EntityName = "contact_message"

	FieldID     = "id"
	FieldEmail  = "email"
	FieldStatus = "status"

	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

type ContactMessage struct {
	ID          string `db:"id" json:"id"`
	FullName    string `db:"full_name" json:"full_name"`
	Email       string `db:"email" json:"email"`
	CompanyName string `db:"company_name" json:"company_name"`
	Message     string `db:"message" json:"message"`
	Status      string `db:"status" json:"status"`
	gModel.Metadata
}
