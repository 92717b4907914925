package ledger

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const launchpadABIJSON = `[
  {"type":"event","name":"TokenLaunched","anonymous":false,"inputs":[
    {"name":"token","type":"address","indexed":true},
    {"name":"pool","type":"address","indexed":true},
    {"name":"creator","type":"address","indexed":true},
    {"name":"ethReserve","type":"uint256","indexed":false},
    {"name":"tokenReserve","type":"uint256","indexed":false}]},
  {"type":"event","name":"TokensBurned","anonymous":false,"inputs":[
    {"name":"token","type":"address","indexed":true},
    {"name":"from","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]}
]`

const poolABIJSON = `[
  {"type":"event","name":"Swap","anonymous":false,"inputs":[
    {"name":"trader","type":"address","indexed":true},
    {"name":"isBuy","type":"bool","indexed":false},
    {"name":"amountIn","type":"uint256","indexed":false},
    {"name":"amountOut","type":"uint256","indexed":false},
    {"name":"ethReserve","type":"uint256","indexed":false},
    {"name":"tokenReserve","type":"uint256","indexed":false}]}
]`

const lockerABIJSON = `[
  {"type":"event","name":"Locked","anonymous":false,"inputs":[
    {"name":"lockId","type":"uint256","indexed":true},
    {"name":"owner","type":"address","indexed":true},
    {"name":"token","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"duration","type":"uint256","indexed":false},
    {"name":"unlockTime","type":"uint256","indexed":false}]},
  {"type":"event","name":"Withdrawn","anonymous":false,"inputs":[
    {"name":"lockId","type":"uint256","indexed":true},
    {"name":"owner","type":"address","indexed":true}]}
]`

const aggregatorABIJSON = `[
  {"type":"function","name":"latestRoundData","stateMutability":"view","inputs":[],"outputs":[
    {"name":"roundId","type":"uint80"},
    {"name":"answer","type":"int256"},
    {"name":"startedAt","type":"uint256"},
    {"name":"updatedAt","type":"uint256"},
    {"name":"answeredInRound","type":"uint80"}]}
]`

var (
	launchpadABI  = mustABI(launchpadABIJSON)
	poolABI       = mustABI(poolABIJSON)
	lockerABI     = mustABI(lockerABIJSON)
	aggregatorABI = mustABI(aggregatorABIJSON)

	topicTokenLaunched = launchpadABI.Events["TokenLaunched"].ID
	topicTokensBurned  = launchpadABI.Events["TokensBurned"].ID
	topicSwap          = poolABI.Events["Swap"].ID
	topicLocked        = lockerABI.Events["Locked"].ID
	topicWithdrawn     = lockerABI.Events["Withdrawn"].ID
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Contracts holds the addresses of the launchpad deployment.
type Contracts struct {
	Launchpad common.Address
	Locker    common.Address
	PriceFeed common.Address
}
