package startups

import (
	"context"
	"errors"
)

type StartupService interface {
	CreateStartup(ctx context.Context, input Startup) (Startup, error)
	UpdateStartup(ctx context.Context, input Startup) (Startup, error)
	DeleteStartup(ctx context.Context, id int64) error
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	GetStartupByFounder(ctx context.Context, founderUUID string) (Startup, error)
	ListStartups(ctx context.Context, filter ListFilter, page, limit int) ([]Startup, int64, error)
}

type startupService struct {
	repo StartupRepository
}

func NewStartupService(repo StartupRepository) StartupService {
	return &startupService{repo: repo}
}

func validateProfile(input Startup) error {
	if !ValidIndustry(input.Industry) {
		return errors.New("invalid industry")
	}
	if !ValidFundingStage(input.FundingStage) {
		return errors.New("invalid funding stage")
	}
	if input.FundingGoal != nil && *input.FundingGoal <= 0 {
		return errors.New("funding goal must be positive")
	}
	return nil
}

func (s *startupService) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	if err := validateProfile(input); err != nil {
		return Startup{}, err
	}
	return s.repo.CreateStartup(ctx, input)
}

func (s *startupService) UpdateStartup(ctx context.Context, input Startup) (Startup, error) {
	if err := validateProfile(input); err != nil {
		return Startup{}, err
	}
	return s.repo.UpdateStartup(ctx, input)
}

func (s *startupService) DeleteStartup(ctx context.Context, id int64) error {
	return s.repo.DeleteStartup(ctx, id)
}

func (s *startupService) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	return s.repo.GetStartupByID(ctx, id)
}

func (s *startupService) GetStartupByFounder(ctx context.Context, founderUUID string) (Startup, error) {
	return s.repo.GetStartupByFounder(ctx, founderUUID)
}

func (s *startupService) ListStartups(ctx context.Context, filter ListFilter, page, limit int) ([]Startup, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if filter.Industry != "" && !ValidIndustry(filter.Industry) {
		return nil, 0, errors.New("invalid industry filter")
	}
	if filter.FundingStage != "" && !ValidFundingStage(filter.FundingStage) {
		return nil, 0, errors.New("invalid funding stage filter")
	}
	offset := (page - 1) * limit
	return s.repo.ListStartups(ctx, filter, limit, offset)
}
