package sampler

import (
	"errors"
	"fmt"
)

// ErrInfeasible is the sentinel matched by InfeasibleError.
var ErrInfeasible = errors.New("composition bounds are infeasible")

// InfeasibleError reports that no valid composition was found for a row
// within the configured number of attempts. Row is -1 when the bounds were
// rejected before sampling.
type InfeasibleError struct {
	Row      int
	Attempts int
	BoundSum float64
}

func (e *InfeasibleError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("composition bounds are infeasible: upper bounds sum to %g < 1", e.BoundSum)
	}
	return fmt.Sprintf("composition bounds are infeasible: row %d rejected after %d attempts", e.Row, e.Attempts)
}

// Is reports whether target is ErrInfeasible.
func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }
