package ledger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ParseRoundAnswer extracts the answer of a latestRoundData result scaled by decimals.
func ParseRoundAnswer(out []byte, decimals int32) (float64, error) {
	values, err := aggregatorABI.Unpack("latestRoundData", out)
	if err != nil {
		return 0, fmt.Errorf("unpack latestRoundData: %w", err)
	}
	if len(values) < 2 {
		return 0, errors.New("latestRoundData returned too few values")
	}
	answer, ok := values[1].(*big.Int)
	if !ok || answer == nil {
		return 0, fmt.Errorf("latestRoundData answer is %T", values[1])
	}
	if answer.Sign() <= 0 {
		return 0, fmt.Errorf("non-positive feed answer %s", answer)
	}
	rate, _ := decimal.NewFromBigInt(answer, -decimals).Float64()
	return rate, nil
}
