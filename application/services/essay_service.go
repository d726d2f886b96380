package services

import (
	"context"

	"essay-backend/application/commands"
	cmdhandlers "essay-backend/application/commands/handlers"
	"essay-backend/application/queries"
	queryhandlers "essay-backend/application/queries/handlers"
	"essay-backend/domain/core/entities"
)

// EssayService is the controller for essay submission and retrieval
type EssayService struct {
	create    *cmdhandlers.CreateEssayHandler
	remove    *cmdhandlers.DeleteEssayHandler
	uploadURL *cmdhandlers.GetUploadURLHandler
	get       *queryhandlers.GetEssayHandler
	list      *queryhandlers.ListEssaysHandler
	in        *Instrumentation
}

// NewEssayService creates a new essay controller
func NewEssayService(
	create *cmdhandlers.CreateEssayHandler,
	remove *cmdhandlers.DeleteEssayHandler,
	uploadURL *cmdhandlers.GetUploadURLHandler,
	get *queryhandlers.GetEssayHandler,
	list *queryhandlers.ListEssaysHandler,
	in *Instrumentation,
) *EssayService {
	return &EssayService{create: create, remove: remove, uploadURL: uploadURL, get: get, list: list, in: in}
}

func (s *EssayService) CreateEssay(ctx context.Context, cmd commands.CreateEssayCommand) (*entities.Essay, error) {
	return instrument(ctx, s.in, "CreateEssay", func(ctx context.Context) (*entities.Essay, error) {
		return s.create.Handle(ctx, cmd)
	})
}

func (s *EssayService) GetEssay(ctx context.Context, query queries.GetEssayQuery) (*queries.EssayResult, error) {
	return instrument(ctx, s.in, "GetEssay", func(ctx context.Context) (*queries.EssayResult, error) {
		return s.get.Handle(ctx, query)
	})
}

func (s *EssayService) ListEssays(ctx context.Context, query queries.ListEssaysQuery) (*queries.ListEssaysResult, error) {
	return instrument(ctx, s.in, "ListEssays", func(ctx context.Context) (*queries.ListEssaysResult, error) {
		return s.list.Handle(ctx, query)
	})
}

func (s *EssayService) DeleteEssay(ctx context.Context, cmd commands.DeleteEssayCommand) error {
	_, err := instrument(ctx, s.in, "DeleteEssay", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remove.Handle(ctx, cmd)
	})
	return err
}

func (s *EssayService) GetUploadURL(ctx context.Context, cmd commands.GetUploadURLCommand) (*commands.UploadURLResult, error) {
	return instrument(ctx, s.in, "GetUploadURL", func(ctx context.Context) (*commands.UploadURLResult, error) {
		return s.uploadURL.Handle(ctx, cmd)
	})
}
