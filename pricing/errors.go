package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuantityRequired rejects requests without a positive quantity. The
// engine never substitutes a default quantity.
var ErrQuantityRequired = errors.New("quantity must be a positive integer")

// CostError reports that prices were computed but total cost could not be,
// because a referenced material or work does not exist. It is returned
// together with a partial result whose prices are valid, so callers can show
// "cost unknown" instead of failing the whole calculation. This is distinct
// from a pricing failure (which returns no result at all).
type CostError struct {
	Missing []string
}

func (e *CostError) Error() string {
	return fmt.Sprintf("cost unavailable: unresolved records: %s", strings.Join(e.Missing, ", "))
}
