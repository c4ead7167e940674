package file_source

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vulpemventures/anchor/internal/core/domain"
	"github.com/vulpemventures/anchor/internal/core/ports"
)

// utxoSource reads the wallet's spendable snapshot from a JSON file, the
// format produced by wallet export tools: a flat list of outputs with their
// outpoint, value in lovelace and optional asset bundle.
type utxoSource struct {
	path string
}

func NewUtxoSource(path string) ports.UtxoSource {
	return &utxoSource{path}
}

type utxoDTO struct {
	TxID      string            `json:"txid"`
	VOut      uint32            `json:"vout"`
	Value     uint64            `json:"value"`
	Assets    map[string]uint64 `json:"assets,omitempty"`
	Address   string            `json:"address,omitempty"`
	DatumHash string            `json:"datumHash,omitempty"`
}

func (s *utxoSource) GetSpendableUtxos(
	ctx context.Context,
) (domain.UtxoSet, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read utxos file: %w", err)
	}

	list := make([]utxoDTO, 0)
	if err := json.Unmarshal(buf, &list); err != nil {
		return nil, fmt.Errorf("invalid utxos file format: %w", err)
	}

	utxos := make([]*domain.Utxo, 0, len(list))
	for i, dto := range list {
		utxo, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("invalid utxo #%d: %w", i, err)
		}
		utxos = append(utxos, utxo)
	}
	return domain.NewUtxoSet(utxos)
}

func (dto utxoDTO) toDomain() (*domain.Utxo, error) {
	if buf, err := hex.DecodeString(dto.TxID); err != nil || len(buf) != 32 {
		return nil, fmt.Errorf("txid must be a 32-byte hex string")
	}
	assets := make(domain.AssetBundle, len(dto.Assets))
	for asset, qty := range dto.Assets {
		if qty == 0 {
			return nil, fmt.Errorf("asset %s quantity must be positive", asset)
		}
		if qty > domain.MaxAssetQuantity {
			return nil, fmt.Errorf(
				"asset %s quantity exceeds the ledger maximum", asset,
			)
		}
		assets[asset] = qty
	}
	return &domain.Utxo{
		UtxoKey: domain.UtxoKey{
			TxID: dto.TxID,
			VOut: dto.VOut,
		},
		Value:     domain.Amount(dto.Value),
		Assets:    assets,
		Address:   dto.Address,
		DatumHash: dto.DatumHash,
	}, nil
}
