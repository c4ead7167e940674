package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// UtxoKey represents the key of an Utxo, composed by its txid and vout.
type UtxoKey struct {
	TxID string
	VOut uint32
}

func (k UtxoKey) Hash() string {
	buf, _ := hex.DecodeString(k.TxID)
	buf = append(buf, byte(k.VOut))
	return hex.EncodeToString(btcutil.Hash160(buf))
}

func (k UtxoKey) String() string {
	return fmt.Sprintf("{%s: %d}", k.TxID, k.VOut)
}

// Utxo is the data structure representing an unspent output as read from the
// wallet snapshot: its value in lovelace, the bundle of native assets it
// carries, and the opaque address/datum fields that selection never touches.
type Utxo struct {
	UtxoKey
	Value     Amount
	Assets    AssetBundle
	Address   string
	DatumHash string
}

// HasAssets returns whether the utxo carries any native asset besides the
// base currency.
func (u *Utxo) HasAssets() bool {
	return len(u.Assets) > 0
}

// Key returns the UtxoKey of the current utxo.
func (u *Utxo) Key() UtxoKey {
	return u.UtxoKey
}

// UtxoSet is the wallet's spendable set, snapshot at call time and read-only
// to the selection code.
type UtxoSet map[UtxoKey]*Utxo

// Utxos materializes the set into a slice, in no particular order.
func (s UtxoSet) Utxos() []*Utxo {
	utxos := make([]*Utxo, 0, len(s))
	for _, u := range s {
		utxos = append(utxos, u)
	}
	return utxos
}

// NewUtxoSet indexes the given utxos by key. A utxo set must reference every
// output at most once, duplicated keys are rejected.
func NewUtxoSet(utxos []*Utxo) (UtxoSet, error) {
	set := make(UtxoSet, len(utxos))
	for _, u := range utxos {
		if _, ok := set[u.Key()]; ok {
			return nil, fmt.Errorf("duplicated utxo %s in set", u.Key())
		}
		set[u.Key()] = u
	}
	return set, nil
}
