package domain

import (
	"fmt"
	"math"
)

var (
	ErrAssetQuantityTooLarge = fmt.Errorf(
		"asset quantity exceeds the maximum representable by the ledger",
	)
)

// MaxAssetQuantity is the largest token quantity a single output can carry.
const MaxAssetQuantity = uint64(math.MaxInt64)

// AssetBundle maps an asset id (policy id + asset name, hex encoded) to the
// positive quantity of that asset attached to one output.
type AssetBundle map[string]uint64

// Add returns a new bundle holding the per-asset sums of the two bundles.
// It fails if any resulting quantity exceeds what the ledger can represent
// in a single output, in which case the two bundles simply cannot coexist
// in one output.
func (b AssetBundle) Add(other AssetBundle) (AssetBundle, error) {
	sum := make(AssetBundle, len(b)+len(other))
	for asset, qty := range b {
		sum[asset] = qty
	}
	for asset, qty := range other {
		total := sum[asset] + qty
		if total < sum[asset] || total > MaxAssetQuantity {
			return nil, ErrAssetQuantityTooLarge
		}
		sum[asset] = total
	}
	return sum, nil
}

// Size returns the number of distinct assets in the bundle.
func (b AssetBundle) Size() int {
	return len(b)
}

// Copy returns a deep copy of the bundle.
func (b AssetBundle) Copy() AssetBundle {
	if b == nil {
		return nil
	}
	c := make(AssetBundle, len(b))
	for asset, qty := range b {
		c[asset] = qty
	}
	return c
}

// SumAssetBundles reduces the given list with checked bundle addition.
// The empty sum is the empty bundle.
func SumAssetBundles(bundles []AssetBundle) (AssetBundle, error) {
	total := make(AssetBundle)
	for _, b := range bundles {
		sum, err := total.Add(b)
		if err != nil {
			return nil, err
		}
		total = sum
	}
	return total, nil
}
