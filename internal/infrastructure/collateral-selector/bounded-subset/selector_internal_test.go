package boundedsubset_selector

import (
	"encoding/hex"
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/anchor/internal/core/domain"
)

// fakeEstimator scores a bundle with one unit of cost-per-byte for the base
// currency plus one per distinct asset, enough to make asset-heavy subsets
// rank worse, and propagates bundle-sum failures like the real one.
type fakeEstimator struct{}

func (e fakeEstimator) MinRequiredValue(
	coinsPerByte domain.Amount, bundles ...domain.AssetBundle,
) (domain.Amount, error) {
	assets, err := domain.SumAssetBundles(bundles)
	if err != nil {
		return 0, err
	}
	return coinsPerByte * domain.Amount(1+len(assets)), nil
}

func TestSelectCollateral(t *testing.T) {
	tests := []struct {
		name           string
		utxos          []*domain.Utxo
		maxInputs      int
		minRequired    domain.Amount
		expectedValues []domain.Amount
	}{
		{
			name:           "prefers cheapest qualifying subset on equal size",
			utxos:          utxosWithValues(5, 3, 2),
			maxInputs:      2,
			minRequired:    7,
			expectedValues: []domain.Amount{5, 2},
		},
		{
			name:           "single utxo matching the threshold exactly",
			utxos:          utxosWithValues(10),
			maxInputs:      1,
			minRequired:    10,
			expectedValues: []domain.Amount{10},
		},
		{
			name:           "prefers fewer inputs over smaller total",
			utxos:          utxosWithValues(100, 60, 60),
			maxInputs:      2,
			minRequired:    50,
			expectedValues: []domain.Amount{60},
		},
		{
			name: "prefers the subset forcing less value into the return output",
			utxos: append(
				utxosWithValues(100),
				withAssets(utxosWithValues(200), "asset1")...,
			),
			maxInputs:      1,
			minRequired:    50,
			expectedValues: []domain.Amount{100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := NewBoundedSubsetCollateralSelector(fakeEstimator{})
			set, err := domain.NewUtxoSet(tt.utxos)
			require.NoError(t, err)

			selected, total, err := selector.SelectCollateral(
				1, tt.maxInputs, tt.minRequired, set,
			)
			require.NoError(t, err)
			requireValidSelection(t, selected, set, tt.maxInputs, tt.minRequired)

			values := make([]domain.Amount, 0, len(selected))
			sum := domain.Amount(0)
			for _, u := range selected {
				values = append(values, u.Value)
				sum += u.Value
			}
			require.ElementsMatch(t, tt.expectedValues, values)
			require.Equal(t, sum, total)
		})
	}
}

func TestSelectCollateralNoResult(t *testing.T) {
	tests := []struct {
		name        string
		utxos       []*domain.Utxo
		maxInputs   int
		minRequired domain.Amount
	}{
		{
			name:        "empty utxo set",
			utxos:       nil,
			maxInputs:   3,
			minRequired: 1,
		},
		{
			name:        "zero max inputs",
			utxos:       utxosWithValues(10, 20, 30),
			maxInputs:   0,
			minRequired: 1,
		},
		{
			name:        "negative max inputs",
			utxos:       utxosWithValues(10, 20, 30),
			maxInputs:   -1,
			minRequired: 1,
		},
		{
			name:        "threshold out of reach",
			utxos:       utxosWithValues(5, 3, 2),
			maxInputs:   3,
			minRequired: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := NewBoundedSubsetCollateralSelector(fakeEstimator{})
			set, err := domain.NewUtxoSet(tt.utxos)
			require.NoError(t, err)

			selected, total, err := selector.SelectCollateral(
				1, tt.maxInputs, tt.minRequired, set,
			)
			require.ErrorIs(t, err, ErrNoCollateral)
			require.Nil(t, selected)
			require.Zero(t, total)
		})
	}
}

// The search only ever looks at the 10 highest valued utxos. Here the only
// combinations reaching the threshold live beyond that bound: the ten
// highest valued utxos all carry a maxed-out quantity of the same asset, so
// any pair of them overflows the return bundle, while alone they are below
// the threshold. The five cheapest asset-free utxos would qualify, but they
// are pruned away and the selection correctly reports no result.
func TestSelectCollateralTruncatesToTenCandidates(t *testing.T) {
	utxos := withAssets(
		utxosWithValues(10, 10, 10, 10, 10, 10, 10, 10, 10, 10), "asset1",
	)
	for i := range utxos {
		utxos[i].Assets["asset1"] = domain.MaxAssetQuantity
	}
	utxos = append(utxos, utxosWithValues(6, 6, 6, 6, 6)...)

	set, err := domain.NewUtxoSet(utxos)
	require.NoError(t, err)

	selector := NewBoundedSubsetCollateralSelector(fakeEstimator{})
	selected, _, err := selector.SelectCollateral(1, 3, 12, set)
	require.ErrorIs(t, err, ErrNoCollateral)
	require.Nil(t, selected)
}

func TestSelectCollateralPanicsOnValueOverflow(t *testing.T) {
	utxos := utxosWithValues(math.MaxUint64, math.MaxUint64)
	set, err := domain.NewUtxoSet(utxos)
	require.NoError(t, err)

	selector := NewBoundedSubsetCollateralSelector(fakeEstimator{})
	require.Panics(t, func() {
		selector.SelectCollateral(1, 2, math.MaxUint64, set)
	})
}

func requireValidSelection(
	t *testing.T, selected []*domain.Utxo, set domain.UtxoSet,
	maxInputs int, minRequired domain.Amount,
) {
	require.NotEmpty(t, selected)
	require.LessOrEqual(t, len(selected), maxInputs)

	seen := make(map[domain.UtxoKey]struct{})
	total := domain.Amount(0)
	for _, u := range selected {
		require.Contains(t, set, u.Key())
		require.NotContains(t, seen, u.Key())
		seen[u.Key()] = struct{}{}
		total += u.Value
	}
	require.GreaterOrEqual(t, total, minRequired)
}

var utxoCounter byte

func utxosWithValues(values ...domain.Amount) []*domain.Utxo {
	utxos := make([]*domain.Utxo, 0, len(values))
	for i, v := range values {
		utxoCounter++
		buf := make([]byte, 32)
		buf[0] = utxoCounter
		utxos = append(utxos, &domain.Utxo{
			UtxoKey: domain.UtxoKey{
				TxID: hex.EncodeToString(buf),
				VOut: uint32(i),
			},
			Value: v,
		})
	}
	return utxos
}

func withAssets(utxos []*domain.Utxo, assets ...string) []*domain.Utxo {
	for _, u := range utxos {
		u.Assets = make(domain.AssetBundle, len(assets))
		for _, asset := range assets {
			u.Assets[asset] = 1
		}
	}
	return utxos
}

func TestEnumerateSubsets(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		maxSize  int
		expected [][]int
	}{
		{
			name:    "all subsets of three elements",
			n:       3,
			maxSize: 3,
			expected: [][]int{
				{0}, {1}, {2}, {0, 1}, {0, 2}, {1, 2}, {0, 1, 2},
			},
		},
		{
			name:     "bounded by max size",
			n:        3,
			maxSize:  1,
			expected: [][]int{{0}, {1}, {2}},
		},
		{
			name:     "max size above universe size",
			n:        2,
			maxSize:  5,
			expected: [][]int{{0}, {1}, {0, 1}},
		},
		{
			name:     "zero max size",
			n:        3,
			maxSize:  0,
			expected: [][]int{},
		},
		{
			name:     "empty universe",
			n:        0,
			maxSize:  3,
			expected: [][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subsets := enumerateSubsets(tt.n, tt.maxSize)
			require.Equal(t, tt.expected, subsets)
		})
	}
}

func TestSortByValueDescAndTruncate(t *testing.T) {
	utxos := utxosWithValues(3, 9, 1, 7, 5)
	set, err := domain.NewUtxoSet(utxos)
	require.NoError(t, err)

	sorted := sortByValueDesc(set)
	require.Equal(
		t,
		[]domain.Amount{9, 7, 5, 3, 1},
		[]domain.Amount{
			sorted[0].Value, sorted[1].Value, sorted[2].Value,
			sorted[3].Value, sorted[4].Value,
		},
	)

	truncated := truncate(sorted, 3)
	require.Len(t, truncated, 3)
	require.Equal(t, domain.Amount(9), truncated[0].Value)
	require.Equal(t, domain.Amount(5), truncated[2].Value)

	require.Len(t, truncate(sorted, 10), 5)
}

func TestBetterCandidate(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *candidate
		expected bool
	}{
		{
			name:     "smaller return min wins regardless of size and total",
			a:        &candidate{utxos: make([]*domain.Utxo, 3), totalValue: 90, minReturnValue: 1},
			b:        &candidate{utxos: make([]*domain.Utxo, 1), totalValue: 10, minReturnValue: 2},
			expected: true,
		},
		{
			name:     "fewer inputs break return min ties",
			a:        &candidate{utxos: make([]*domain.Utxo, 1), totalValue: 90, minReturnValue: 1},
			b:        &candidate{utxos: make([]*domain.Utxo, 2), totalValue: 10, minReturnValue: 1},
			expected: true,
		},
		{
			name:     "smaller total breaks remaining ties",
			a:        &candidate{utxos: make([]*domain.Utxo, 2), totalValue: 10, minReturnValue: 1},
			b:        &candidate{utxos: make([]*domain.Utxo, 2), totalValue: 11, minReturnValue: 1},
			expected: true,
		},
		{
			name:     "equal on every criterion",
			a:        &candidate{utxos: make([]*domain.Utxo, 2), totalValue: 10, minReturnValue: 1},
			b:        &candidate{utxos: make([]*domain.Utxo, 2), totalValue: 10, minReturnValue: 1},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, betterCandidate(tt.a, tt.b))
			if tt.expected {
				require.False(t, betterCandidate(tt.b, tt.a))
			}
		})
	}
}

// Cross-checks the selection against an independent exhaustive search over
// the same truncated universe: no qualifying subset may rank better under
// the (return min, input count, total value) order than the returned one.
func TestSelectCollateralMatchesExhaustiveSearch(t *testing.T) {
	utxos := append(
		utxosWithValues(40, 25, 15, 8, 5, 3, 2, 1),
		append(
			withAssets(utxosWithValues(30, 10), "asset1"),
			withAssets(utxosWithValues(20, 4), "asset1", "asset2")...,
		)...,
	)
	set, err := domain.NewUtxoSet(utxos)
	require.NoError(t, err)

	coinsPerByte := domain.Amount(2)
	maxInputs := 3
	minRequired := domain.Amount(50)

	selector := NewBoundedSubsetCollateralSelector(fakeEstimator{})
	selected, total, err := selector.SelectCollateral(
		coinsPerByte, maxInputs, minRequired, set,
	)
	require.NoError(t, err)

	expected := exhaustiveSearch(t, set, coinsPerByte, maxInputs, minRequired)
	require.Equal(
		t, keysOf(expected), keysOf(selected),
	)
	require.Equal(t, mustSumValues(expected), total)
}

func exhaustiveSearch(
	t *testing.T, set domain.UtxoSet, coinsPerByte domain.Amount,
	maxInputs int, minRequired domain.Amount,
) []*domain.Utxo {
	t.Helper()

	universe := truncate(sortByValueDesc(set), maxCandidateUtxos)
	var best []*domain.Utxo
	var bestRank [3]uint64

	for mask := 1; mask < 1<<len(universe); mask++ {
		if bits.OnesCount(uint(mask)) > maxInputs {
			continue
		}
		subset := make([]*domain.Utxo, 0, maxInputs)
		total := domain.Amount(0)
		for i, u := range universe {
			if mask&(1<<i) != 0 {
				subset = append(subset, u)
				total += u.Value
			}
		}
		if total < minRequired {
			continue
		}
		minReturn, err := fakeEstimator{}.MinRequiredValue(
			coinsPerByte, assetBundles(subset)...,
		)
		if err != nil {
			continue
		}
		rank := [3]uint64{
			uint64(minReturn), uint64(len(subset)), uint64(total),
		}
		if best == nil || lessRank(rank, bestRank) {
			best, bestRank = subset, rank
		}
	}

	require.NotNil(t, best)
	return best
}

func lessRank(a, b [3]uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func keysOf(utxos []*domain.Utxo) map[domain.UtxoKey]struct{} {
	keys := make(map[domain.UtxoKey]struct{}, len(utxos))
	for _, u := range utxos {
		keys[u.Key()] = struct{}{}
	}
	return keys
}
