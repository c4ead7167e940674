package ports

import "github.com/vulpemventures/anchor/internal/core/domain"

// CollateralSelector is the abstraction for any kind of service intended to
// return a subset of the given utxos suitable to collateralize a
// script-executing transaction, covering the minimum required value with at
// most maxInputs utxos, based on a specific strategy.
type CollateralSelector interface {
	// SelectCollateral implements a certain collateral selection strategy
	// and returns the selection along with its total value. The expected
	// absence of a solution is signaled with ErrNoCollateral.
	SelectCollateral(
		coinsPerByte domain.Amount, maxInputs int,
		minRequiredValue domain.Amount, utxos domain.UtxoSet,
	) (selectedUtxos []*domain.Utxo, totalValue domain.Amount, err error)
}

// MinValueEstimator is the abstraction for any service able to tell the
// minimum amount of base currency an output carrying the given asset bundles
// must hold to be accepted by the ledger.
type MinValueEstimator interface {
	// MinRequiredValue sums the given bundles and returns the min value for
	// an output carrying the result. It fails only if the summed bundle
	// cannot be represented in a single output.
	MinRequiredValue(
		coinsPerByte domain.Amount, bundles ...domain.AssetBundle,
	) (domain.Amount, error)
}
