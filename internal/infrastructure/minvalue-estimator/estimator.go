package minvalue_estimator

import (
	"fmt"

	"github.com/vulpemventures/anchor/internal/core/domain"
	"github.com/vulpemventures/anchor/internal/core/ports"
)

var (
	ErrBundleNotRepresentable = fmt.Errorf(
		"the summed assets cannot be represented in a single output",
	)
)

type estimator struct {
	ledger ports.Ledger
}

func NewMinValueEstimator(ledger ports.Ledger) ports.MinValueEstimator {
	return &estimator{ledger}
}

// MinRequiredValue sums the given bundles and measures the ledger min-value
// rule against a synthetic output carrying the result. The synthetic output
// holds the maximum representable value so that the measured size is an
// upper bound for any value the real output may end up holding.
func (e *estimator) MinRequiredValue(
	coinsPerByte domain.Amount, bundles ...domain.AssetBundle,
) (domain.Amount, error) {
	assets, err := domain.SumAssetBundles(bundles)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBundleNotRepresentable, err)
	}

	out := e.ledger.FakeOutput(domain.MaxLovelaceSupply, assets)
	return e.ledger.MinOutputValue(out, coinsPerByte), nil
}
