package splitbill

import "fmt"

// ValidationError reports a share allocation that does not add up to the bill
// total. It carries both numbers so callers can render a precise diagnostic.
type ValidationError struct {
	Sum   int64
	Total int64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("total share (%d) must equal total amount (%d)", e.Sum, e.Total)
}

// validateShares checks the share-sum invariant: integer equality, no rounding
// tolerance. Negative shares are rejected before summing.
func validateShares(shares map[string]int64, totalAmount int64) error {
	if len(shares) == 0 {
		return fmt.Errorf("at least one share is required")
	}
	var sum int64
	for userID, share := range shares {
		if userID == "" {
			return fmt.Errorf("share with empty user id")
		}
		if share < 0 {
			return fmt.Errorf("share for %s is negative", userID)
		}
		sum += share
	}
	if sum != totalAmount {
		return &ValidationError{Sum: sum, Total: totalAmount}
	}
	return nil
}
