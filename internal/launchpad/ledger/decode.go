package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/shopspring/decimal"
)

// ErrMalformedLog is returned for logs that do not match the expected event layout.
var ErrMalformedLog = errors.New("malformed log")

// Address renders an address the way it is stored: lowercase hex.
func Address(a common.Address) string {
	return strings.ToLower(a.Hex())
}

func meta(lg types.Log, ts time.Time) model.EventMeta {
	return model.EventMeta{
		TxHash:      lg.TxHash.Hex(),
		LogIndex:    lg.Index,
		BlockNumber: lg.BlockNumber,
		BlockHash:   lg.BlockHash.Hex(),
		Timestamp:   ts.UTC(),
	}
}

func malformed(lg types.Log, format string, args ...any) error {
	return fmt.Errorf("%w: tx %s index %d: %s", ErrMalformedLog, lg.TxHash.Hex(), lg.Index, fmt.Sprintf(format, args...))
}

func unpack(contract abi.ABI, event string, topic common.Hash, topics int, lg types.Log) ([]any, error) {
	if lg.Removed {
		return nil, malformed(lg, "log removed by reorg")
	}
	if len(lg.Topics) != topics || lg.Topics[0] != topic {
		return nil, malformed(lg, "unexpected topics for %s", event)
	}
	values, err := contract.Unpack(event, lg.Data)
	if err != nil {
		return nil, malformed(lg, "unpack %s: %v", event, err)
	}
	return values, nil
}

func bigArg(lg types.Log, values []any, i int) (*big.Int, error) {
	if i >= len(values) {
		return nil, malformed(lg, "missing argument %d", i)
	}
	v, ok := values[i].(*big.Int)
	if !ok || v == nil {
		return nil, malformed(lg, "argument %d is %T, want uint256", i, values[i])
	}
	return v, nil
}

func topicAddress(lg types.Log, i int) string {
	return Address(common.BytesToAddress(lg.Topics[i].Bytes()))
}

// DecodeLaunch decodes a TokenLaunched log of the launchpad contract.
func DecodeLaunch(lg types.Log, ts time.Time) (model.LaunchEvent, error) {
	values, err := unpack(launchpadABI, "TokenLaunched", topicTokenLaunched, 4, lg)
	if err != nil {
		return model.LaunchEvent{}, err
	}
	ethReserve, err := bigArg(lg, values, 0)
	if err != nil {
		return model.LaunchEvent{}, err
	}
	tokenReserve, err := bigArg(lg, values, 1)
	if err != nil {
		return model.LaunchEvent{}, err
	}
	return model.LaunchEvent{
		EventMeta:    meta(lg, ts),
		TokenAddress: topicAddress(lg, 1),
		PoolAddress:  topicAddress(lg, 2),
		Creator:      topicAddress(lg, 3),
		EthReserve:   decimal.NewFromBigInt(ethReserve, 0),
		TokenReserve: decimal.NewFromBigInt(tokenReserve, 0),
	}, nil
}

// DecodeSwap decodes a Swap log emitted by the pool of token.
func DecodeSwap(lg types.Log, ts time.Time, token model.Token) (model.SwapEvent, error) {
	values, err := unpack(poolABI, "Swap", topicSwap, 2, lg)
	if err != nil {
		return model.SwapEvent{}, err
	}
	if Address(lg.Address) != token.PoolAddress {
		return model.SwapEvent{}, malformed(lg, "swap emitted by %s, want pool %s", Address(lg.Address), token.PoolAddress)
	}
	isBuy, ok := values[0].(bool)
	if !ok {
		return model.SwapEvent{}, malformed(lg, "isBuy is %T", values[0])
	}
	amounts := make([]*big.Int, 4)
	for i := range amounts {
		if amounts[i], err = bigArg(lg, values, i+1); err != nil {
			return model.SwapEvent{}, err
		}
	}
	m := meta(lg, ts)
	return model.SwapEvent{
		TokenAddress: token.Address,
		PoolAddress:  token.PoolAddress,
		Trader:       topicAddress(lg, 1),
		IsBuy:        isBuy,
		AmountIn:     decimal.NewFromBigInt(amounts[0], 0),
		AmountOut:    decimal.NewFromBigInt(amounts[1], 0),
		EthReserve:   decimal.NewFromBigInt(amounts[2], 0),
		TokenReserve: decimal.NewFromBigInt(amounts[3], 0),
		TxHash:       m.TxHash,
		LogIndex:     m.LogIndex,
		BlockNumber:  m.BlockNumber,
		BlockHash:    m.BlockHash,
		Timestamp:    m.Timestamp,
	}, nil
}

// DecodeLock decodes a Locked log of the locker contract.
func DecodeLock(lg types.Log, ts time.Time) (model.LockRecord, error) {
	values, err := unpack(lockerABI, "Locked", topicLocked, 4, lg)
	if err != nil {
		return model.LockRecord{}, err
	}
	amount, err := bigArg(lg, values, 0)
	if err != nil {
		return model.LockRecord{}, err
	}
	duration, err := bigArg(lg, values, 1)
	if err != nil {
		return model.LockRecord{}, err
	}
	unlockTime, err := bigArg(lg, values, 2)
	if err != nil {
		return model.LockRecord{}, err
	}
	if !duration.IsInt64() || duration.Int64() > math.MaxInt64/int64(time.Second) || !unlockTime.IsInt64() {
		return model.LockRecord{}, malformed(lg, "lock duration or unlock time out of range")
	}

	m := meta(lg, ts)
	return model.LockRecord{
		LockID:       lg.Topics[1].Big().String(),
		Owner:        topicAddress(lg, 2),
		TokenAddress: topicAddress(lg, 3),
		Amount:       decimal.NewFromBigInt(amount, 0),
		Duration:     time.Duration(duration.Int64()) * time.Second,
		LockedAt:     m.Timestamp,
		UnlockAt:     time.Unix(unlockTime.Int64(), 0).UTC(),
		LockTxHash:   m.TxHash,
		BlockNumber:  m.BlockNumber,
	}, nil
}

// DecodeUnlock decodes a Withdrawn log of the locker contract.
func DecodeUnlock(lg types.Log, ts time.Time) (model.UnlockEvent, error) {
	if _, err := unpack(lockerABI, "Withdrawn", topicWithdrawn, 3, lg); err != nil {
		return model.UnlockEvent{}, err
	}
	return model.UnlockEvent{
		EventMeta: meta(lg, ts),
		LockID:    lg.Topics[1].Big().String(),
		Owner:     topicAddress(lg, 2),
	}, nil
}

// DecodeBurn decodes a TokensBurned log of the launchpad contract.
func DecodeBurn(lg types.Log, ts time.Time) (model.BurnEvent, error) {
	values, err := unpack(launchpadABI, "TokensBurned", topicTokensBurned, 3, lg)
	if err != nil {
		return model.BurnEvent{}, err
	}
	amount, err := bigArg(lg, values, 0)
	if err != nil {
		return model.BurnEvent{}, err
	}
	m := meta(lg, ts)
	return model.BurnEvent{
		TokenAddress: topicAddress(lg, 1),
		From:         topicAddress(lg, 2),
		Amount:       decimal.NewFromBigInt(amount, 0),
		TxHash:       m.TxHash,
		LogIndex:     m.LogIndex,
		BlockNumber:  m.BlockNumber,
		BlockHash:    m.BlockHash,
		Timestamp:    m.Timestamp,
	}, nil
}
