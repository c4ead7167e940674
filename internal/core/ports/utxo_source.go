package ports

import (
	"context"

	"github.com/vulpemventures/anchor/internal/core/domain"
)

// UtxoSource is the abstraction for any service able to return a snapshot of
// the wallet's spendable utxos. The snapshot is read-only to its consumers.
type UtxoSource interface {
	// GetSpendableUtxos returns the current spendable set of the wallet.
	GetSpendableUtxos(ctx context.Context) (domain.UtxoSet, error)
}
