// Package oracle binds Chainlink-style price feed contracts. Feeds expose
// their most recent observation through latestRoundData; USD feeds report the
// answer as a fixed-point integer with 8 decimal places.
package oracle

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Caller executes read-only contract calls. wallet.Signer satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// FeedDecimals is the fixed-point precision of USD price feeds.
const FeedDecimals = 8

const aggregatorABI = `[
	{"inputs":[],"name":"latestRoundData","outputs":[
		{"name":"roundId","type":"uint80"},
		{"name":"answer","type":"int256"},
		{"name":"startedAt","type":"uint256"},
		{"name":"updatedAt","type":"uint256"},
		{"name":"answeredInRound","type":"uint80"}
	],"stateMutability":"view","type":"function"}
]`

// ABI is the parsed aggregator interface shared by all feed handles.
var ABI = mustParseABI(aggregatorABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("oracle: parsing ABI: %v", err))
	}
	return parsed
}

// RoundData is one price observation as reported by the feed.
type RoundData struct {
	RoundID         *big.Int
	Answer          *big.Int
	StartedAt       *big.Int
	UpdatedAt       *big.Int
	AnsweredInRound *big.Int
}

// Feed is a read-call handle bound to one aggregator contract.
type Feed struct {
	address common.Address
	caller  Caller
}

// Bind attaches a feed handle to the aggregator at the given address.
func Bind(address common.Address, caller Caller) *Feed {
	return &Feed{address: address, caller: caller}
}

// Address returns the bound aggregator address.
func (f *Feed) Address() common.Address {
	return f.address
}

// LatestRoundData reads the feed's most recent observation.
func (f *Feed) LatestRoundData(ctx context.Context) (RoundData, error) {
	data, err := ABI.Pack("latestRoundData")
	if err != nil {
		return RoundData{}, fmt.Errorf("oracle: packing latestRoundData: %w", err)
	}

	ret, err := f.caller.CallContract(ctx, ethereum.CallMsg{To: &f.address, Data: data}, nil)
	if err != nil {
		return RoundData{}, fmt.Errorf("oracle: calling latestRoundData on %s: %w", f.address.Hex(), err)
	}

	out, err := ABI.Unpack("latestRoundData", ret)
	if err != nil {
		return RoundData{}, fmt.Errorf("oracle: decoding latestRoundData result: %w", err)
	}

	return RoundData{
		RoundID:         out[0].(*big.Int),
		Answer:          out[1].(*big.Int),
		StartedAt:       out[2].(*big.Int),
		UpdatedAt:       out[3].(*big.Int),
		AnsweredInRound: out[4].(*big.Int),
	}, nil
}

// LatestPrice reads the feed's latest answer scaled down by the fixed
// 8-decimal feed convention.
func (f *Feed) LatestPrice(ctx context.Context) (float64, error) {
	round, err := f.LatestRoundData(ctx)
	if err != nil {
		return 0, err
	}

	price, _ := new(big.Float).Quo(
		new(big.Float).SetInt(round.Answer),
		big.NewFloat(1e8),
	).Float64()
	return price, nil
}
