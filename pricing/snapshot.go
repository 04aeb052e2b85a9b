package pricing

import "printshop-crm/models"

// Snapshot is the immutable repository state one calculation runs against.
// It is loaded fresh per call and passed explicitly through the matcher,
// composer and cost calculator; the engine never caches it between calls.
type Snapshot struct {
	// Rules holds the active rule set, already filtered to is_active = true.
	Rules []models.CalculationRule

	// Product is the requested product. Nil on manual-override calculations,
	// where no rule evaluation happens.
	Product *models.Product

	// Material is the requested material, nil when the request has none or
	// the record could not be resolved.
	Material *models.Material

	// Works maps operation name to the resolved Work record for every
	// selected extra that could be resolved.
	Works map[string]models.Work
}
