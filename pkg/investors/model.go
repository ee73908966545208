package investors

import (
	"time"

	"venturelink/pkg/startups"
)

// InvestorProfile is an investor's public matchmaking profile. Investment
// focus and preferred stages may be empty when the investor has not declared
// any preferences.
type InvestorProfile struct {
	ID              int64                   `json:"id"`
	UserUUID        string                  `json:"user_uuid"`
	FirmName        string                  `json:"firm_name"`
	Bio             string                  `json:"bio,omitempty"`
	Website         string                  `json:"website,omitempty"`
	Location        string                  `json:"location,omitempty"`
	LinkedinURL     string                  `json:"linkedin_url,omitempty"`
	TwitterURL      string                  `json:"twitter_url,omitempty"`
	InvestmentFocus []startups.Industry     `json:"investment_focus,omitempty"`
	PreferredStages []startups.FundingStage `json:"preferred_stages,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

// ProfileWithUser pairs a profile with the owning user's display data.
type ProfileWithUser struct {
	Profile InvestorProfile `json:"profile"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
}

type InvestorProfileList struct {
	Items []InvestorProfile `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
