package bonus

import (
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// bonusPlaces is the precision bonuses are rounded to
const bonusPlaces = 2

// RankRule grants Rate × profit to sellers whose position Matches
type RankRule struct {
	Name    string
	Rate    decimal.Decimal
	Matches func(bonusCtx strategy.BonusContext) bool
}

// TopRule matches the highest ranked seller
func TopRule(rate decimal.Decimal) RankRule {
	return RankRule{Name: "top", Rate: rate, Matches: strategy.BonusContext.IsTop}
}

// RunnerUpRule matches ranks 1 and 2
func RunnerUpRule(rate decimal.Decimal) RankRule {
	return RankRule{
		Name: "runner_up",
		Rate: rate,
		Matches: func(c strategy.BonusContext) bool {
			return c.Index == 1 || c.Index == 2
		},
	}
}

// BottomRule matches the lowest ranked seller and pays nothing
func BottomRule() RankRule {
	return RankRule{Name: "bottom", Rate: decimal.Zero, Matches: strategy.BonusContext.IsBottom}
}

// DefaultRule matches every seller
func DefaultRule(rate decimal.Decimal) RankRule {
	return RankRule{
		Name:    "default",
		Rate:    rate,
		Matches: func(strategy.BonusContext) bool { return true },
	}
}

// RankRates holds the profit shares of the canonical rank policy
type RankRates struct {
	Top      decimal.Decimal
	RunnerUp decimal.Decimal
	Default  decimal.Decimal
}

// DefaultRankRates returns 15% for the top seller, 10% for ranks 1-2 and 5% otherwise
func DefaultRankRates() RankRates {
	return RankRates{
		Top:      decimal.RequireFromString("0.15"),
		RunnerUp: decimal.RequireFromString("0.10"),
		Default:  decimal.RequireFromString("0.05"),
	}
}

// RankProfitStrategy pays a share of profit chosen by the first rule matching
// the seller's rank. Rule order is precedence.
type RankProfitStrategy struct {
	strategy.BaseStrategy
	rules []RankRule
}

// NewRankProfitStrategy creates the canonical rank policy.
// The top rule is checked before the bottom rule, so a lone seller gets the top share.
func NewRankProfitStrategy(rates RankRates) *RankProfitStrategy {
	return NewRuleBonusStrategy(
		"rank_profit",
		"Share of profit by rank: top, runner-up, bottom, everyone else",
		TopRule(rates.Top),
		RunnerUpRule(rates.RunnerUp),
		BottomRule(),
		DefaultRule(rates.Default),
	)
}

// NewFlatProfitShareStrategy pays every seller except the last the same share
func NewFlatProfitShareStrategy(rate decimal.Decimal) *RankProfitStrategy {
	return NewRuleBonusStrategy(
		"flat_profit_share",
		"Same share of profit for every seller except the lowest ranked",
		TopRule(rate),
		BottomRule(),
		DefaultRule(rate),
	)
}

// NewRuleBonusStrategy creates a bonus strategy from an ordered rule list
func NewRuleBonusStrategy(name, description string, rules ...RankRule) *RankProfitStrategy {
	ordered := make([]RankRule, len(rules))
	copy(ordered, rules)
	return &RankProfitStrategy{
		BaseStrategy: strategy.NewBaseStrategy(name, strategy.StrategyTypeBonus, description),
		rules:        ordered,
	}
}

// Rules returns a copy of the rules in precedence order
func (s *RankProfitStrategy) Rules() []RankRule {
	result := make([]RankRule, len(s.rules))
	copy(result, s.rules)
	return result
}

// MatchRule returns the first rule matching bonusCtx
func (s *RankProfitStrategy) MatchRule(bonusCtx strategy.BonusContext) (RankRule, bool) {
	for _, rule := range s.rules {
		if rule.Matches(bonusCtx) {
			return rule, true
		}
	}
	return RankRule{}, false
}

// ComputeBonus returns profit × rate of the matching rule, rounded half away from zero.
// No matching rule means no bonus.
func (s *RankProfitStrategy) ComputeBonus(bonusCtx strategy.BonusContext) decimal.Decimal {
	rule, ok := s.MatchRule(bonusCtx)
	if !ok {
		return decimal.Zero
	}
	return bonusCtx.Profit.Mul(rule.Rate).Round(bonusPlaces)
}
