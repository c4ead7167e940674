package application

import (
	"strings"

	"github.com/vulpemventures/anchor/internal/core/domain"
	bs_selector "github.com/vulpemventures/anchor/internal/infrastructure/collateral-selector/bounded-subset"
	babbage_ledger "github.com/vulpemventures/anchor/internal/infrastructure/ledger/babbage"
	minvalue_estimator "github.com/vulpemventures/anchor/internal/infrastructure/minvalue-estimator"
)

var (
	DefaultMinValueEstimator = minvalue_estimator.NewMinValueEstimator(
		babbage_ledger.NewLedger(),
	)
	DefaultCollateralSelector = bs_selector.NewBoundedSubsetCollateralSelector(
		DefaultMinValueEstimator,
	)
)

// CollateralInfo is the result of a collateral selection: the reserved utxos
// and their total value.
type CollateralInfo struct {
	Utxos      Utxos
	TotalValue domain.Amount
}

type Utxos []*domain.Utxo

func (u Utxos) Keys() []domain.UtxoKey {
	keys := make([]domain.UtxoKey, 0, len(u))
	for _, utxo := range u {
		keys = append(keys, utxo.Key())
	}
	return keys
}

type UtxoKeys []domain.UtxoKey

func (l UtxoKeys) String() string {
	str := make([]string, 0, len(l))
	for _, k := range l {
		str = append(str, k.String())
	}
	return strings.Join(str, ", ")
}
