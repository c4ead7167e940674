package boundedsubset_selector

import (
	"fmt"
	"sort"

	"github.com/vulpemventures/anchor/internal/core/domain"
	"github.com/vulpemventures/anchor/internal/core/ports"
)

var (
	ErrNoCollateral = fmt.Errorf(
		"not found any utxo combination suitable as collateral",
	)
)

// maxCandidateUtxos is the number of utxos, picked by descending value, the
// subset search is allowed to look at. The worst case is 2^10 - 1 non-empty
// subsets, which keeps the search tractable. Utxos beyond the 10 highest
// valued ones are never considered, even if combining smaller ones would
// have produced a better answer: a deliberate, lossy approximation.
const maxCandidateUtxos = 10

type candidate struct {
	utxos          []*domain.Utxo
	totalValue     domain.Amount
	minReturnValue domain.Amount
}

// selectionRank lists the ranking criteria in priority order, each one
// breaking the ties left by the previous. All keys rank ascending: the
// smaller the key, the better the candidate.
//   - min value forced into the collateral return output
//   - number of inputs consumed
//   - total value locked as collateral
var selectionRank = []func(c *candidate) uint64{
	func(c *candidate) uint64 { return uint64(c.minReturnValue) },
	func(c *candidate) uint64 { return uint64(len(c.utxos)) },
	func(c *candidate) uint64 { return uint64(c.totalValue) },
}

func betterCandidate(a, b *candidate) bool {
	for _, key := range selectionRank {
		if key(a) != key(b) {
			return key(a) < key(b)
		}
	}
	return false
}

type selector struct {
	estimator ports.MinValueEstimator
}

func NewBoundedSubsetCollateralSelector(
	estimator ports.MinValueEstimator,
) ports.CollateralSelector {
	return &selector{estimator}
}

// SelectCollateral returns the subset of the given utxos that covers the
// minimum required collateral value with at most maxInputs entries, forcing
// the least value into the collateral return output, along with the total
// value locked by the selection. Only the 10 highest valued utxos are
// searched. ErrNoCollateral is returned if no qualifying combination exists.
func (s *selector) SelectCollateral(
	coinsPerByte domain.Amount, maxInputs int,
	minRequiredValue domain.Amount, utxos domain.UtxoSet,
) ([]*domain.Utxo, domain.Amount, error) {
	candidateUtxos := truncate(sortByValueDesc(utxos), maxCandidateUtxos)

	var best *candidate
	for _, indexes := range enumerateSubsets(len(candidateUtxos), maxInputs) {
		subset := pick(candidateUtxos, indexes)
		totalValue := mustSumValues(subset)
		if totalValue < minRequiredValue {
			continue
		}
		minReturnValue, err := s.estimator.MinRequiredValue(
			coinsPerByte, assetBundles(subset)...,
		)
		if err != nil {
			// The leftover assets of this combination cannot be represented
			// in a single return output. Not an error, just not a candidate.
			continue
		}
		c := &candidate{subset, totalValue, minReturnValue}
		if best == nil || betterCandidate(c, best) {
			best = c
		}
	}

	if best == nil {
		return nil, 0, ErrNoCollateral
	}
	return best.utxos, best.totalValue, nil
}

// sortByValueDesc materializes the utxo set into a sequence sorted by
// descending value. The relative order of equal values is irrelevant, it
// only affects which of two equivalent answers wins.
func sortByValueDesc(utxos domain.UtxoSet) []*domain.Utxo {
	sorted := utxos.Utxos()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	return sorted
}

func truncate(utxos []*domain.Utxo, limit int) []*domain.Utxo {
	if len(utxos) <= limit {
		return utxos
	}
	return utxos[:limit]
}

// enumerateSubsets returns every non-empty subset of {0..n-1} with at most
// maxSize elements. Each subset lists its indexes in ascending order, which
// keeps the underlying sequence order as the subset's canonical order.
func enumerateSubsets(n, maxSize int) [][]int {
	if maxSize > n {
		maxSize = n
	}
	subsets := [][]int{}
	for size := 1; size <= maxSize; size++ {
		subsets = append(subsets, combinations(n, size, 0, nil)...)
	}
	return subsets
}

// combinations returns all subsets of size elements picked from
// {offset..n-1}, each prepended with the given prefix.
func combinations(n, size, offset int, prefix []int) [][]int {
	if size == 0 {
		return [][]int{prefix}
	}
	result := [][]int{}
	for i := offset; i <= n-size; i++ {
		next := append(append(make([]int, 0, len(prefix)+1), prefix...), i)
		result = append(result, combinations(n, size-1, i+1, next)...)
	}
	return result
}

func pick(utxos []*domain.Utxo, indexes []int) []*domain.Utxo {
	subset := make([]*domain.Utxo, 0, len(indexes))
	for _, i := range indexes {
		subset = append(subset, utxos[i])
	}
	return subset
}

func assetBundles(utxos []*domain.Utxo) []domain.AssetBundle {
	bundles := make([]domain.AssetBundle, 0, len(utxos))
	for _, u := range utxos {
		bundles = append(bundles, u.Assets)
	}
	return bundles
}

// mustSumValues returns the total value of the given utxos. Wallet utxos are
// bounded by the max lovelace supply, so summing a handful of them can never
// overflow: if it does the snapshot is corrupted or this package has a bug,
// and continuing would silently return a wrong selection.
func mustSumValues(utxos []*domain.Utxo) domain.Amount {
	values := make([]domain.Amount, 0, len(utxos))
	for _, u := range utxos {
		values = append(values, u.Value)
	}
	total, err := domain.SumAmounts(values)
	if err != nil {
		panic(fmt.Sprintf(
			"anchor/collateral-selector: utxo values summed past the max "+
				"supply (%s), please report this as a bug", err,
		))
	}
	return total
}
