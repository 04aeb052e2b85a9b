package pricing

import "printshop-crm/models"

// CostResult is the cost-side outcome, derived independently of whether the
// price was automatic or manually overridden.
type CostResult struct {
	TotalCost float64
	Lines     []models.BreakdownLine
}

// CalculateCost derives total cost from material and work consumption. It
// only uses records present in the snapshot; the engine reports unresolvable
// references separately as a CostError.
func CalculateCost(snap *Snapshot, req *models.PricingRequest) CostResult {
	var out CostResult
	qty := float64(req.Quantity)

	if snap.Material != nil {
		consumed := materialConsumption(snap.Material, req, qty)
		cost := snap.Material.UnitPrice * consumed
		out.TotalCost += cost
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: snap.Material.Name, Kind: "cost", Amount: cost,
		})
	}

	for _, sel := range req.ExtraWorks {
		work, ok := snap.Works[sel.Name]
		if !ok {
			continue
		}
		cost := work.CostPerUnit * sel.Duration
		out.TotalCost += cost
		out.Lines = append(out.Lines, models.BreakdownLine{
			Label: work.Name, Kind: "cost", Amount: cost,
		})
	}

	return out
}

// materialConsumption returns how much material the request consumes, in the
// material's own unit. Area materials convert millimeter dimensions to square
// meters; every other unit consumes the raw quantity.
func materialConsumption(m *models.Material, req *models.PricingRequest, qty float64) float64 {
	if m.Unit != models.UnitArea {
		return qty
	}
	if req.WidthMM == nil || req.HeightMM == nil {
		return 0
	}
	return (*req.WidthMM * *req.HeightMM / 1_000_000) * qty
}

// MarginPercent computes margin from a total price and cost produced by the
// same calculation. A zero or negative total yields 0, never a division
// error.
func MarginPercent(totalPrice, totalCost float64) float64 {
	if totalPrice <= 0 {
		return 0
	}
	return (totalPrice - totalCost) / totalPrice * 100
}
