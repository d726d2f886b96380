package services

import (
	"context"

	"essay-backend/application/commands"
	"essay-backend/application/commands/handlers"
)

// ProcessingService is the controller used by the queue worker
type ProcessingService struct {
	process *handlers.ProcessEssayHandler
	in      *Instrumentation
}

func NewProcessingService(process *handlers.ProcessEssayHandler, in *Instrumentation) *ProcessingService {
	return &ProcessingService{process: process, in: in}
}

func (s *ProcessingService) ProcessEssay(ctx context.Context, cmd commands.ProcessEssayCommand) (*commands.ProcessEssayResult, error) {
	return instrument(ctx, s.in, "ProcessEssay", func(ctx context.Context) (*commands.ProcessEssayResult, error) {
		return s.process.Handle(ctx, cmd)
	})
}
