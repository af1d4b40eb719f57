package strategy

import (
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/erp/salesperf/internal/infrastructure/strategy/bonus"
	"github.com/erp/salesperf/internal/infrastructure/strategy/revenue"
)

// Settings tunes the built-in strategies
type Settings struct {
	RankRates   bonus.RankRates
	VolumeTiers []revenue.VolumeTier
	// DefaultRevenue and DefaultBonus name the strategies used when a request names none.
	// Empty means simple_discount and rank_profit.
	DefaultRevenue string
	DefaultBonus   string
}

// DefaultSettings returns the canonical rates and tiers
func DefaultSettings() Settings {
	return Settings{
		RankRates:   bonus.DefaultRankRates(),
		VolumeTiers: revenue.DefaultVolumeTiers(),
	}
}

// NewRegistryWithDefaults creates a new registry with the canonical strategies registered
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	return NewRegistryWithSettings(DefaultSettings())
}

// NewRegistryWithSettings creates a registry whose built-in strategies use settings
func NewRegistryWithSettings(settings Settings) (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	// Register revenue strategies
	simple := revenue.NewSimpleDiscountStrategy()
	if err := r.RegisterRevenueStrategy(simple); err != nil {
		return nil, err
	}

	bulk := revenue.NewBulkDiscountStrategy(settings.VolumeTiers)
	if err := r.RegisterRevenueStrategy(bulk); err != nil {
		return nil, err
	}

	// Register bonus strategies
	rankProfit := bonus.NewRankProfitStrategy(settings.RankRates)
	if err := r.RegisterBonusStrategy(rankProfit); err != nil {
		return nil, err
	}

	flat := bonus.NewFlatProfitShareStrategy(settings.RankRates.Default)
	if err := r.RegisterBonusStrategy(flat); err != nil {
		return nil, err
	}

	// Set defaults
	defaultRevenue := settings.DefaultRevenue
	if defaultRevenue == "" {
		defaultRevenue = simple.Name()
	}
	if err := r.SetDefault(strategy.StrategyTypeRevenue, defaultRevenue); err != nil {
		return nil, err
	}
	defaultBonus := settings.DefaultBonus
	if defaultBonus == "" {
		defaultBonus = rankProfit.Name()
	}
	if err := r.SetDefault(strategy.StrategyTypeBonus, defaultBonus); err != nil {
		return nil, err
	}

	return r, nil
}
