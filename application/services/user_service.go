package services

import (
	"context"

	"essay-backend/application/commands"
	cmdhandlers "essay-backend/application/commands/handlers"
	"essay-backend/application/queries"
	queryhandlers "essay-backend/application/queries/handlers"
	"essay-backend/domain/core/entities"
)

// UserService is the controller for the caller's profile
type UserService struct {
	getProfile    *queryhandlers.GetProfileHandler
	updateProfile *cmdhandlers.UpdateProfileHandler
	in            *Instrumentation
}

func NewUserService(getProfile *queryhandlers.GetProfileHandler, updateProfile *cmdhandlers.UpdateProfileHandler, in *Instrumentation) *UserService {
	return &UserService{getProfile: getProfile, updateProfile: updateProfile, in: in}
}

func (s *UserService) GetProfile(ctx context.Context, query queries.GetProfileQuery) (*entities.User, error) {
	return instrument(ctx, s.in, "GetProfile", func(ctx context.Context) (*entities.User, error) {
		return s.getProfile.Handle(ctx, query)
	})
}

func (s *UserService) UpdateProfile(ctx context.Context, cmd commands.UpdateProfileCommand) (*entities.User, error) {
	return instrument(ctx, s.in, "UpdateProfile", func(ctx context.Context) (*entities.User, error) {
		return s.updateProfile.Handle(ctx, cmd)
	})
}
