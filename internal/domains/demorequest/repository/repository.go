package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"beacon/infras/otel"
	"beacon/infras/postgres"
	"beacon/internal/domains/demorequest/model"
	gDto "beacon/shared/dto"
	gRepo "beacon/shared/repository"
)

type DemoRequest interface {
	Insert(ctx context.Context, model model.DemoRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DemoRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DemoRequest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.DemoRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) DemoRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.DemoRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
