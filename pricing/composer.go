package pricing

import "printshop-crm/models"

// ComposedPrice is the revenue-side outcome of combining matched rules.
type ComposedPrice struct {
	UnitPrice    float64
	TotalPrice   float64
	AppliedRules []string
	Lines        []models.BreakdownLine
}

// ComposePrice combines matched rules into unit and total price. The step
// order is load-bearing: base, per-unit extras, quantity adjustment, flat
// extras into the total, client discount last. Changing it changes results.
func ComposePrice(matched MatchedRules, product *models.Product, req *models.PricingRequest) ComposedPrice {
	var out ComposedPrice
	out.AppliedRules = []string{}
	qty := float64(req.Quantity)

	// 1. Base price per unit: rule value is per 100 units; fall back to the
	// product's own per-unit base price, recording no rule.
	var unit float64
	if matched.Base != nil {
		unit = matched.Base.Value / 100
		out.AppliedRules = append(out.AppliedRules, matched.Base.Describe())
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: matched.Base.Name, Kind: "price", Amount: unit * qty,
		})
	} else {
		unit = product.BasePrice
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: "Base price", Kind: "price", Amount: unit * qty,
		})
	}

	// 2. Extras: per-unit extras raise the unit price, flat extras accumulate
	// separately and are never multiplied by quantity.
	var flatTotal float64
	for _, em := range matched.Extras {
		switch em.Rule.RuleType {
		case models.RuleExtraCostPerUnit:
			unit += em.Rule.Value
			out.Lines = append(out.Lines, models.BreakdownLine{
				Label: em.Rule.Name, Kind: "price", Amount: em.Rule.Value * qty,
			})
		case models.RuleExtraCostFlat:
			flatTotal += em.Rule.Value
			out.Lines = append(out.Lines, models.BreakdownLine{
				Label: em.Rule.Name, Kind: "price", Amount: em.Rule.Value,
			})
		}
		out.AppliedRules = append(out.AppliedRules, em.Rule.Describe())
	}

	// 3. Quantity adjustment: signed percentage on the unit price.
	if adj := matched.Adjustment; adj != nil {
		delta := unit * adj.Value / 100
		unit += delta
		out.AppliedRules = append(out.AppliedRules, adj.Describe())
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: adj.Name, Kind: "price", Amount: delta * qty,
		})
	}

	// 4. Total.
	total := unit*qty + flatTotal

	// 5. Client discount applies to the total, last.
	if disc := matched.Discount; disc != nil {
		delta := total*disc.Value - total
		total += delta
		out.AppliedRules = append(out.AppliedRules, disc.Describe())
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: disc.Name, Kind: "price", Amount: delta,
		})
	}

	// 6. The exposed unit price is recomputed whenever flat extras or a
	// discount broke the unit*qty relation, so unit_price x quantity ==
	// total_price always holds for display.
	if flatTotal != 0 || matched.Discount != nil {
		unit = total / qty
	}

	out.UnitPrice = unit
	out.TotalPrice = total
	return out
}
