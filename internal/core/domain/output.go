package domain

// TxOutput is the shape of a transaction output as measured by the ledger
// min-value rule: where the funds go, how much base currency it holds and
// which assets it carries. The datum hash is optional.
type TxOutput struct {
	Address   string
	Value     Amount
	Assets    AssetBundle
	DatumHash string
}
