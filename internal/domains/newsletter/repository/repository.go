package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"beacon/infras/otel"
	"beacon/infras/postgres"
	"beacon/internal/domains/newsletter/model"
	gDto "beacon/shared/dto"
	gRepo "beacon/shared/repository"
)

type Newsletter interface {
	Insert(ctx context.Context, model model.Subscriber) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Subscriber, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Subscriber, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Subscriber]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Newsletter {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Subscriber](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
