// Package budget derives sequence-length truncation ceilings from the
// statistical distribution of per-example tokenized lengths.
//
// Instead of a fixed constant, the ceiling is a percentile of the
// training split's length distribution, balancing information retention
// against compute cost.
package budget

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultPercentile is the target percentile when none is configured.
const DefaultPercentile = 95.0

// Select computes the truncation ceiling for a length distribution:
// ceil(percentile(lengths, p)) with linear interpolation, matching the
// numpy percentile the budgets were originally tuned with.
//
// Select is monotonic in p: for a fixed distribution, a higher
// percentile never yields a smaller ceiling.
func Select(lengths []int, percentile float64) (int, error) {
	if len(lengths) == 0 {
		return 0, fmt.Errorf("empty length distribution")
	}
	if percentile < 0 || percentile > 100 {
		return 0, fmt.Errorf("percentile out of range [0, 100]: %v", percentile)
	}

	values := make([]float64, len(lengths))
	for i, l := range lengths {
		values[i] = float64(l)
	}
	sort.Float64s(values)

	q := stat.Quantile(percentile/100, stat.LinInterp, values, nil)
	return int(math.Ceil(q)), nil
}

// Resolve returns the ceiling for one length dimension: the explicit
// override when the caller supplies one, otherwise the percentile of
// the distribution. The boolean reports whether the percentile
// computation ran.
func Resolve(override int, lengths []int, percentile float64) (int, bool, error) {
	if override > 0 {
		return override, false, nil
	}

	ceiling, err := Select(lengths, percentile)
	if err != nil {
		return 0, false, err
	}
	return ceiling, true, nil
}
