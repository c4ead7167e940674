package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/vulpemventures/anchor/internal/config"
	"github.com/vulpemventures/anchor/internal/core/application"
	"github.com/vulpemventures/anchor/internal/core/domain"
	file_source "github.com/vulpemventures/anchor/internal/infrastructure/utxo-source/file"
)

var (
	utxosFile        string
	coinsPerByte     uint64
	maxInputs        int
	minRequiredValue uint64
	assetsJSON       string

	selectCmd = &cobra.Command{
		Use:   "select",
		Short: "select collateral utxos from a wallet snapshot",
		Long: "this command lets you pick the utxos to collateralize a " +
			"script-executing transaction out of the wallet snapshot read " +
			"from the given file",
		RunE: selectCollateral,
	}
	minValueCmd = &cobra.Command{
		Use:   "min-value",
		Short: "estimate the min value of a collateral return output",
		Long: "this command lets you estimate the minimum amount of base " +
			"currency an output carrying the given assets must hold to be " +
			"accepted by the ledger",
		RunE: minValue,
	}
)

func init() {
	selectCmd.Flags().StringVar(
		&utxosFile, "utxos-file", config.GetString(config.UtxosFileKey),
		"path of the wallet utxo snapshot (JSON)",
	)
	selectCmd.Flags().Uint64Var(
		&minRequiredValue, "min-value", 0,
		"minimum collateral value required by the transaction, in lovelace",
	)
	selectCmd.Flags().IntVar(
		&maxInputs, "max-inputs", config.GetInt(config.MaxCollateralInputsKey),
		"max number of collateral inputs allowed by the protocol",
	)
	selectCmd.Flags().Uint64Var(
		&coinsPerByte, "coins-per-byte",
		uint64(config.GetInt(config.CoinsPerUtxoByteKey)),
		"protocol cost-per-byte parameter",
	)

	minValueCmd.Flags().StringVar(
		&assetsJSON, "assets", "",
		"JSON object mapping the asset ids carried by the output to their "+
			"quantities",
	)
	minValueCmd.Flags().Uint64Var(
		&coinsPerByte, "coins-per-byte",
		uint64(config.GetInt(config.CoinsPerUtxoByteKey)),
		"protocol cost-per-byte parameter",
	)
}

func selectCollateral(_ *cobra.Command, _ []string) error {
	svc := application.NewCollateralService(
		file_source.NewUtxoSource(utxosFile),
		application.DefaultCollateralSelector,
		application.DefaultMinValueEstimator,
	)

	info, err := svc.SelectCollateral(
		context.Background(),
		domain.Amount(coinsPerByte), maxInputs, domain.Amount(minRequiredValue),
	)
	if err != nil {
		printErr(err)
		return nil
	}

	type utxoView struct {
		ID    string `json:"id"`
		TxID  string `json:"txid"`
		VOut  uint32 `json:"vout"`
		Value uint64 `json:"value"`
	}
	utxos := make([]utxoView, 0, len(info.Utxos))
	for _, u := range info.Utxos {
		utxos = append(utxos, utxoView{u.Hash(), u.TxID, u.VOut, uint64(u.Value)})
	}
	printResp(map[string]interface{}{
		"selected_utxos": utxos,
		"total_value":    uint64(info.TotalValue),
		"total_ada":      toAda(info.TotalValue),
	})
	return nil
}

func minValue(_ *cobra.Command, _ []string) error {
	assets := make(domain.AssetBundle)
	if assetsJSON != "" {
		if err := json.Unmarshal([]byte(assetsJSON), &assets); err != nil {
			printErr(err)
			return nil
		}
	}

	minVal, err := application.DefaultMinValueEstimator.MinRequiredValue(
		domain.Amount(coinsPerByte), assets,
	)
	if err != nil {
		printErr(err)
		return nil
	}

	printResp(map[string]interface{}{
		"min_value": uint64(minVal),
		"min_ada":   toAda(minVal),
	})
	return nil
}
