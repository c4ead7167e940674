package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// CoinsPerUtxoByteKey is the key to customize the protocol cost-per-byte
	// parameter used by the ledger min-value rule.
	CoinsPerUtxoByteKey = "COINS_PER_UTXO_BYTE"
	// MaxCollateralInputsKey is the key to customize the protocol maximum
	// number of collateral inputs a transaction is allowed to consume.
	MaxCollateralInputsKey = "MAX_COLLATERAL_INPUTS"
	// LogLevelKey is the key to customize the log level to catch more
	// specific or more high level logs.
	LogLevelKey = "LOG_LEVEL"
	// UtxosFileKey is the key to customize the path of the wallet snapshot
	// file consumed by the file utxo source.
	UtxosFileKey = "UTXOS_FILE"
)

var (
	vip *viper.Viper

	defaultDatadir = btcutil.AppDataDir("anchor", false)

	// mainnet protocol parameters
	defaultCoinsPerUtxoByte    = 4310
	defaultMaxCollateralInputs = 3
	defaultLogLevel            = 4
	defaultUtxosFile           = filepath.Join(defaultDatadir, "utxos.json")
)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("ANCHOR")
	vip.AutomaticEnv()

	vip.SetDefault(CoinsPerUtxoByteKey, defaultCoinsPerUtxoByte)
	vip.SetDefault(MaxCollateralInputsKey, defaultMaxCollateralInputs)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(UtxosFileKey, defaultUtxosFile)

	if err := validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
}

func validate() error {
	if coinsPerByte := GetInt(CoinsPerUtxoByteKey); coinsPerByte <= 0 {
		return fmt.Errorf("coins per utxo byte must be a positive number")
	}
	if maxInputs := GetInt(MaxCollateralInputsKey); maxInputs < 0 {
		return fmt.Errorf("max collateral inputs must not be negative")
	}
	if utxosFile := GetString(UtxosFileKey); len(utxosFile) <= 0 {
		return fmt.Errorf("utxos file path must not be null")
	}
	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func Set(key string, val interface{}) {
	vip.Set(key, val)
}

func IsSet(key string) bool {
	return vip.IsSet(key)
}
