package pricing

import (
	"sort"

	"printshop-crm/models"
)

// MatchedRules is the per-category outcome of rule matching for one request.
type MatchedRules struct {
	// Base is the winning BasePricePer100 rule, nil when the product's own
	// base price applies instead.
	Base *models.CalculationRule

	// Extras holds every extra-cost rule matched to a selected extra work,
	// in request selection order. Extras are additive, never exclusive.
	Extras []ExtraMatch

	// Adjustment is the single winning QuantityAdjustmentPercent rule.
	// Adjustments do not stack.
	Adjustment *models.CalculationRule

	// Discount is the externally supplied ClientDiscountMultiplier rule.
	Discount *models.CalculationRule
}

// ExtraMatch pairs a matched extra-cost rule with the selection that
// triggered it.
type ExtraMatch struct {
	Rule      models.CalculationRule
	Selection models.ExtraWorkSelection
}

// MatchRules selects the applicable rules per category. It is a pure function
// of (rules, request): no hidden state, no mutation of rule records. The rule
// slice must already be filtered to active rules.
func MatchRules(rules []models.CalculationRule, req *models.PricingRequest) MatchedRules {
	var matched MatchedRules

	matched.Base = pickBest(rules, func(r *models.CalculationRule) bool {
		return r.RuleType == models.RuleBasePricePer100 &&
			appliesToProduct(r, req.ProductID) &&
			coversQuantity(r, req.Quantity)
	})

	matched.Adjustment = pickBest(rules, func(r *models.CalculationRule) bool {
		return r.RuleType == models.RuleQuantityAdjustmentPercent &&
			appliesToProduct(r, req.ProductID) &&
			coversQuantity(r, req.Quantity)
	})

	for _, sel := range req.ExtraWorks {
		var candidates []models.CalculationRule
		for i := range rules {
			r := &rules[i]
			if r.IsExtra() &&
				r.ExtraName != nil && *r.ExtraName == sel.Name &&
				appliesToProduct(r, req.ProductID) &&
				appliesToLamination(r, req.Lamination) {
				candidates = append(candidates, *r)
			}
		}
		// Deterministic application order within one selection.
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Priority != candidates[j].Priority {
				return candidates[i].Priority > candidates[j].Priority
			}
			return candidates[i].ID < candidates[j].ID
		})
		for _, r := range candidates {
			matched.Extras = append(matched.Extras, ExtraMatch{Rule: r, Selection: sel})
		}
	}

	if d := req.ClientDiscount; d != nil && d.RuleType == models.RuleClientDiscountMultiplier {
		matched.Discount = d
	}

	return matched
}

// appliesToProduct: a nil product condition matches every product.
func appliesToProduct(r *models.CalculationRule, productID int64) bool {
	return r.ProductID == nil || *r.ProductID == productID
}

// appliesToLamination: a nil lamination condition matches any selection,
// including none.
func appliesToLamination(r *models.CalculationRule, lamination *string) bool {
	if r.Lamination == nil {
		return true
	}
	return lamination != nil && *r.Lamination == *lamination
}

// coversQuantity: inclusive bounds, nil bounds are unbounded.
func coversQuantity(r *models.CalculationRule, quantity int) bool {
	if r.MinQuantity != nil && quantity < *r.MinQuantity {
		return false
	}
	if r.MaxQuantity != nil && quantity > *r.MaxQuantity {
		return false
	}
	return true
}

// pickBest selects the single winning rule among those passing the predicate.
// Ties are resolved deterministically: highest priority first, then an exact
// product match beats an applies-to-all match, then the lowest rule ID wins.
// Identical priority and specificity is a configuration hazard, not an error.
func pickBest(rules []models.CalculationRule, pred func(*models.CalculationRule) bool) *models.CalculationRule {
	var best *models.CalculationRule
	for i := range rules {
		r := &rules[i]
		if !pred(r) {
			continue
		}
		if best == nil || beats(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}

func beats(a, b *models.CalculationRule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	aExact := a.ProductID != nil
	bExact := b.ProductID != nil
	if aExact != bExact {
		return aExact
	}
	return a.ID < b.ID
}
