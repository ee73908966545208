package investors

import (
	"context"
	"errors"

	"venturelink/pkg/startups"
)

type InvestorService interface {
	CreateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error)
	UpdateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error)
	DeleteProfile(ctx context.Context, id int64) error
	GetProfileByID(ctx context.Context, id int64) (InvestorProfile, error)
	GetProfileByUser(ctx context.Context, userUUID string) (InvestorProfile, error)
	ListProfiles(ctx context.Context, page, limit int) ([]InvestorProfile, int64, error)
	ListProfilesWithUsers(ctx context.Context, skip, limit int) ([]ProfileWithUser, error)
}

type investorService struct {
	repo InvestorRepository
}

func NewInvestorService(repo InvestorRepository) InvestorService {
	return &investorService{repo: repo}
}

func validateSets(input InvestorProfile) error {
	for _, ind := range input.InvestmentFocus {
		if !startups.ValidIndustry(ind) {
			return errors.New("invalid industry in investment focus")
		}
	}
	for _, st := range input.PreferredStages {
		if !startups.ValidFundingStage(st) {
			return errors.New("invalid funding stage in preferred stages")
		}
	}
	return nil
}

func (s *investorService) CreateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error) {
	if input.FirmName == "" {
		return InvestorProfile{}, errors.New("firm name is required")
	}
	if err := validateSets(input); err != nil {
		return InvestorProfile{}, err
	}
	return s.repo.CreateProfile(ctx, input)
}

func (s *investorService) UpdateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error) {
	if input.FirmName == "" {
		return InvestorProfile{}, errors.New("firm name is required")
	}
	if err := validateSets(input); err != nil {
		return InvestorProfile{}, err
	}
	return s.repo.UpdateProfile(ctx, input)
}

func (s *investorService) DeleteProfile(ctx context.Context, id int64) error {
	return s.repo.DeleteProfile(ctx, id)
}

func (s *investorService) GetProfileByID(ctx context.Context, id int64) (InvestorProfile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

func (s *investorService) GetProfileByUser(ctx context.Context, userUUID string) (InvestorProfile, error) {
	return s.repo.GetProfileByUser(ctx, userUUID)
}

func (s *investorService) ListProfiles(ctx context.Context, page, limit int) ([]InvestorProfile, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListProfiles(ctx, limit, offset)
}

func (s *investorService) ListProfilesWithUsers(ctx context.Context, skip, limit int) ([]ProfileWithUser, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return s.repo.ListProfilesWithUsers(ctx, skip, limit)
}
