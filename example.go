package main

import (
	"context"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/anchor/internal/core/application"
	"github.com/vulpemventures/anchor/internal/core/domain"
	file_source "github.com/vulpemventures/anchor/internal/infrastructure/utxo-source/file"
)

const snapshotPath = "example-utxos.json"

var snapshot = `[
	{"txid": "` + strings.Repeat("aa", 32) + `", "vout": 0, "value": 5000000},
	{"txid": "` + strings.Repeat("bb", 32) + `", "vout": 1, "value": 3000000},
	{
		"txid": "` + strings.Repeat("cc", 32) + `", "vout": 0, "value": 2000000,
		"assets": {"` + strings.Repeat("dd", 28) + `746f6b656e": 10}
	}
]`

func main() {
	log.SetLevel(log.DebugLevel)

	if err := os.WriteFile(snapshotPath, []byte(snapshot), 0644); err != nil {
		log.WithError(err).Fatal("failed to write example snapshot")
	}
	defer os.Remove(snapshotPath)

	svc := application.NewCollateralService(
		file_source.NewUtxoSource(snapshotPath),
		application.DefaultCollateralSelector,
		application.DefaultMinValueEstimator,
	)

	coinsPerByte := domain.Amount(4310)
	maxInputs := 3
	minRequiredValue := domain.Amount(6_000_000)

	info, err := svc.SelectCollateral(
		context.Background(), coinsPerByte, maxInputs, minRequiredValue,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to select collateral")
	}

	for _, u := range info.Utxos {
		log.Infof("collateral input %s worth %d", u.Key(), u.Value)
	}
	log.Infof("total collateral value: %d", info.TotalValue)

	minValue, err := svc.MinRequiredValue(
		coinsPerByte, domain.AssetBundle{strings.Repeat("dd", 28) + "746f6b656e": 10},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to estimate min value")
	}
	log.Infof("min value for the return output: %d", minValue)
}
