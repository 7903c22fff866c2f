// Package erc20 binds the handful of ERC-20 operations the activation engine
// needs: name, symbol, decimals, balanceOf and transfer calldata.
package erc20

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

const tokenABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// ABI is the parsed minimal ERC-20 interface shared by all token handles.
var ABI = mustParseABI(tokenABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("erc20: parsing ABI: %v", err))
	}
	return parsed
}

// Token is a read-call handle bound to one token contract address.
type Token struct {
	address common.Address
	caller  Caller
}

// Bind attaches a token handle to the contract at the given address.
func Bind(address common.Address, caller Caller) *Token {
	return &Token{address: address, caller: caller}
}

// Address returns the bound contract address.
func (t *Token) Address() common.Address {
	return t.address
}

// call packs a method call, executes it and unpacks the raw return data.
func (t *Token) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("erc20: packing %s: %w", method, err)
	}

	ret, err := t.caller.CallContract(ctx, ethereum.CallMsg{To: &t.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("erc20: calling %s on %s: %w", method, t.address.Hex(), err)
	}

	out, err := ABI.Unpack(method, ret)
	if err != nil {
		return nil, fmt.Errorf("erc20: decoding %s result: %w", method, err)
	}
	return out, nil
}

// Name reads the token's full name.
func (t *Token) Name(ctx context.Context) (string, error) {
	out, err := t.call(ctx, "name")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Symbol reads the token's ticker symbol.
func (t *Token) Symbol(ctx context.Context) (string, error) {
	out, err := t.call(ctx, "symbol")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Decimals reads the token's decimal precision.
func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}

// BalanceOf reads the raw integer balance held by owner.
func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := t.call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// TransferData packs the calldata for transfer(to, amount). The amount is the
// raw integer form already scaled by the token's decimals.
func TransferData(to common.Address, amount *big.Int) ([]byte, error) {
	data, err := ABI.Pack("transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("erc20: packing transfer: %w", err)
	}
	return data, nil
}
