package startups

import "time"

// Industry is the closed set of sectors a startup can declare.
type Industry string

const (
	IndustryTechnology         Industry = "Technology"
	IndustryHealthcare         Industry = "Healthcare"
	IndustryFinance            Industry = "Finance"
	IndustryEducation          Industry = "Education"
	IndustryRetail             Industry = "Retail"
	IndustryManufacturing      Industry = "Manufacturing"
	IndustryRealEstate         Industry = "Real Estate"
	IndustryEnergy             Industry = "Energy"
	IndustryTransportation     Industry = "Transportation"
	IndustryMedia              Industry = "Media"
	IndustryEntertainment      Industry = "Entertainment"
	IndustryFoodBeverage       Industry = "Food & Beverage"
	IndustryAgriculture        Industry = "Agriculture"
	IndustryHospitality        Industry = "Hospitality"
	IndustryConstruction       Industry = "Construction"
	IndustryTelecommunications Industry = "Telecommunications"
	IndustryBiotechnology      Industry = "Biotechnology"
	IndustryAerospace          Industry = "Aerospace"
	IndustryAutomotive         Industry = "Automotive"
	IndustryEcommerce          Industry = "Ecommerce"
	IndustryGaming             Industry = "Gaming"
	IndustryCybersecurity      Industry = "Cybersecurity"
	IndustryFintech            Industry = "Fintech"
	IndustryEdTech             Industry = "Ed Tech"
	IndustryHealthTech         Industry = "Health Tech"
	IndustryOther              Industry = "Other"
)

// FundingStage is the closed set of funding stages a startup can be in.
type FundingStage string

const (
	StageIdea    FundingStage = "Idea"
	StageMVP     FundingStage = "MVP"
	StagePreSeed FundingStage = "Pre-Seed"
	StageSeed    FundingStage = "Seed"
	StageSeriesA FundingStage = "Series A"
	StageSeriesB FundingStage = "Series B"
	StageSeriesC FundingStage = "Series C"
	StageIPO     FundingStage = "IPO"
	StageMerger  FundingStage = "Merger & Acquisition"
	StageOther   FundingStage = "Other"
)

var allIndustries = map[Industry]bool{
	IndustryTechnology: true, IndustryHealthcare: true, IndustryFinance: true,
	IndustryEducation: true, IndustryRetail: true, IndustryManufacturing: true,
	IndustryRealEstate: true, IndustryEnergy: true, IndustryTransportation: true,
	IndustryMedia: true, IndustryEntertainment: true, IndustryFoodBeverage: true,
	IndustryAgriculture: true, IndustryHospitality: true, IndustryConstruction: true,
	IndustryTelecommunications: true, IndustryBiotechnology: true, IndustryAerospace: true,
	IndustryAutomotive: true, IndustryEcommerce: true, IndustryGaming: true,
	IndustryCybersecurity: true, IndustryFintech: true, IndustryEdTech: true,
	IndustryHealthTech: true, IndustryOther: true,
}

var allStages = map[FundingStage]bool{
	StageIdea: true, StageMVP: true, StagePreSeed: true, StageSeed: true,
	StageSeriesA: true, StageSeriesB: true, StageSeriesC: true,
	StageIPO: true, StageMerger: true, StageOther: true,
}

// ValidIndustry reports whether s is a known industry value.
func ValidIndustry(s Industry) bool { return allIndustries[s] }

// ValidFundingStage reports whether s is a known funding stage value.
func ValidFundingStage(s FundingStage) bool { return allStages[s] }

type Startup struct {
	ID            int64        `json:"id"`
	FounderUUID   string       `json:"founder_uuid"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Industry      Industry     `json:"industry"`
	FundingStage  FundingStage `json:"funding_stage"`
	Location      string       `json:"location"`
	FundingGoal   *float64     `json:"funding_goal,omitempty"`
	BusinessModel string       `json:"business_model,omitempty"`
	TargetMarket  string       `json:"target_market,omitempty"`
	Website       string       `json:"website,omitempty"`
	PitchDeckURL  string       `json:"pitch_deck_url,omitempty"`
	IsPublished   bool         `json:"is_published"`
	CreatedAt     time.Time    `json:"created_at"`
}

type StartupList struct {
	Items []Startup `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
