package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/anchor/internal/core/domain"
	"github.com/vulpemventures/anchor/internal/core/ports"
)

// CollateralService is responsible for the operations needed to reserve
// collateral for a script-executing transaction:
//   - Select the subset of the wallet's spendable utxos to be used as collateral, covering the minimum value required by the protocol with at most the allowed number of inputs.
//   - Estimate the minimum value the collateral return output of such transaction must hold, given the assets it would carry.
//
// The selection is computed on a snapshot of the wallet's spendable set taken
// at call time, nothing is locked or mutated. An absent solution is a normal
// outcome that callers must handle, typically by asking the user to add
// funds, while an overflow of the wallet's own values is a bug and makes the
// selection panic.
type CollateralService struct {
	utxoSource ports.UtxoSource
	selector   ports.CollateralSelector
	estimator  ports.MinValueEstimator

	log func(format string, a ...interface{})
}

func NewCollateralService(
	utxoSource ports.UtxoSource,
	selector ports.CollateralSelector,
	estimator ports.MinValueEstimator,
) *CollateralService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("collateral service: %s", format)
		log.Debugf(format, a...)
	}
	return &CollateralService{utxoSource, selector, estimator, logFn}
}

func (cs *CollateralService) SelectCollateral(
	ctx context.Context,
	coinsPerByte domain.Amount, maxInputs int,
	minRequiredValue domain.Amount,
) (*CollateralInfo, error) {
	utxos, err := cs.utxoSource.GetSpendableUtxos(ctx)
	if err != nil {
		return nil, err
	}

	selectedUtxos, totalValue, err := cs.selector.SelectCollateral(
		coinsPerByte, maxInputs, minRequiredValue, utxos,
	)
	if err != nil {
		return nil, err
	}

	cs.log(
		"selected %d utxo(s) worth %d as collateral (%s)",
		len(selectedUtxos), totalValue,
		UtxoKeys(Utxos(selectedUtxos).Keys()),
	)

	return &CollateralInfo{
		Utxos:      selectedUtxos,
		TotalValue: totalValue,
	}, nil
}

func (cs *CollateralService) MinRequiredValue(
	coinsPerByte domain.Amount, bundles ...domain.AssetBundle,
) (domain.Amount, error) {
	return cs.estimator.MinRequiredValue(coinsPerByte, bundles...)
}
