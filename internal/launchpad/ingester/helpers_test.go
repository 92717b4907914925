package ingester

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ledger"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

var (
	testTime   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tokenAddr  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	poolAddr   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	traderAddr = common.HexToAddress("0x00000000000000000000000000000000000000cc")

	testToken = model.Token{
		Address:          ledger.Address(tokenAddr),
		PoolAddress:      ledger.Address(poolAddr),
		CreatedBlock:     90,
		LastCheckedBlock: 99,
		Tier:             model.TierHot,
	}

	swapEvent = func() abi.Event {
		parsed, err := abi.JSON(strings.NewReader(`[{"type":"event","name":"Swap","anonymous":false,"inputs":[
			{"name":"trader","type":"address","indexed":true},
			{"name":"isBuy","type":"bool","indexed":false},
			{"name":"amountIn","type":"uint256","indexed":false},
			{"name":"amountOut","type":"uint256","indexed":false},
			{"name":"ethReserve","type":"uint256","indexed":false},
			{"name":"tokenReserve","type":"uint256","indexed":false}]}]`))
		if err != nil {
			panic(err)
		}
		return parsed.Events["Swap"]
	}()
)

func swapLog(t *testing.T, emitter common.Address, tx string, block uint64, index uint, ethReserve, tokenReserve int64) types.Log {
	t.Helper()
	data, err := swapEvent.Inputs.NonIndexed().Pack(true, big.NewInt(10), big.NewInt(20), big.NewInt(ethReserve), big.NewInt(tokenReserve))
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	return types.Log{
		Address:     emitter,
		Topics:      []common.Hash{swapEvent.ID, common.BytesToHash(traderAddr.Bytes())},
		Data:        data,
		BlockNumber: block,
		BlockHash:   blockHash(block),
		TxHash:      common.HexToHash(tx),
		Index:       index,
	}
}

var launchEvent = func() abi.Event {
	parsed, err := abi.JSON(strings.NewReader(`[{"type":"event","name":"TokenLaunched","anonymous":false,"inputs":[
		{"name":"token","type":"address","indexed":true},
		{"name":"pool","type":"address","indexed":true},
		{"name":"creator","type":"address","indexed":true},
		{"name":"ethReserve","type":"uint256","indexed":false},
		{"name":"tokenReserve","type":"uint256","indexed":false}]}]`))
	if err != nil {
		panic(err)
	}
	return parsed.Events["TokenLaunched"]
}()

func launchLog(t *testing.T, token, pool common.Address, block uint64, index uint, ethReserve, tokenReserve int64) types.Log {
	t.Helper()
	data, err := launchEvent.Inputs.NonIndexed().Pack(big.NewInt(ethReserve), big.NewInt(tokenReserve))
	if err != nil {
		t.Fatalf("pack launch: %v", err)
	}
	return types.Log{
		Topics: []common.Hash{
			launchEvent.ID,
			common.BytesToHash(token.Bytes()),
			common.BytesToHash(pool.Bytes()),
			common.BytesToHash(traderAddr.Bytes()),
		},
		Data:        data,
		BlockNumber: block,
		BlockHash:   blockHash(block),
		TxHash:      common.BigToHash(big.NewInt(int64(block*1000) + int64(index))),
		Index:       index,
	}
}

func blockHash(number uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(0xb10c0000 + number))
}

func blockRef(number uint64) model.BlockRef {
	return model.BlockRef{
		Number:    number,
		Hash:      blockHash(number).Hex(),
		Timestamp: testTime.Add(time.Duration(number) * 12 * time.Second),
	}
}

func cursorAt(number uint64) model.Checkpoint {
	return model.Checkpoint{Partition: "launchpad", BlockNumber: number, BlockHash: blockHash(number).Hex()}
}
