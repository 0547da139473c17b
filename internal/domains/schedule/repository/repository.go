package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"examsync/infras/otel"
	"examsync/infras/postgres"
	"examsync/internal/domains/schedule/model"
	gDto "examsync/shared/dto"
	gRepo "examsync/shared/repository"
)

type Schedule interface {
	Insert(ctx context.Context, model model.ExamSchedule) error
	InsertBulk(ctx context.Context, models []model.ExamSchedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExamSchedule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExamSchedule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ExamSchedule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ExamSchedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
