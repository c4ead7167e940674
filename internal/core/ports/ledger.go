package ports

import "github.com/vulpemventures/anchor/internal/core/domain"

// Ledger abstracts the two ledger-model primitives the selection code needs:
// the rule computing the minimum value an output must hold to be valid, and
// the construction of a synthetic output used only to measure that rule
// against a hypothetical output shape.
type Ledger interface {
	// MinOutputValue returns the minimum amount of base currency the given
	// output must hold to be ledger-valid, based on its serialized size and
	// the protocol cost-per-byte parameter. It is total and deterministic
	// for well-formed outputs.
	MinOutputValue(out domain.TxOutput, coinsPerByte domain.Amount) domain.Amount
	// FakeOutput builds a synthetic output carrying the given value and
	// assets. The result is only ever passed to MinOutputValue, it is never
	// included in a transaction.
	FakeOutput(value domain.Amount, assets domain.AssetBundle) domain.TxOutput
}
