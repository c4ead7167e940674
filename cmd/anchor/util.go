package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vulpemventures/anchor/internal/core/domain"
)

// lovelaceExponent is the number of decimal places between lovelace and ADA.
const lovelaceExponent = 6

var colorRed = string("\033[31m")

func printResp(resp interface{}) {
	buf, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(buf))
}

func printErr(err error) {
	fmt.Println(colorRed, fmt.Sprintf("ERROR: %s", err))
}

// toAda renders a lovelace amount in ADA, the unit humans reason about.
func toAda(lovelace domain.Amount) string {
	return decimal.New(int64(lovelace), -lovelaceExponent).String()
}
