package erc20

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr = common.HexToAddress("0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82")
	ownerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

// fakeCaller answers contract calls from a selector-keyed table.
type fakeCaller struct {
	returns map[string][]byte
	err     error
	lastMsg ethereum.CallMsg
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	f.lastMsg = msg
	if f.err != nil {
		return nil, f.err
	}
	return f.returns[common.Bytes2Hex(msg.Data[:4])], nil
}

func packOutput(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	out, err := ABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func selector(method string) string {
	return common.Bytes2Hex(ABI.Methods[method].ID)
}

func TestReads(t *testing.T) {
	caller := &fakeCaller{returns: map[string][]byte{
		selector("name"):      packOutput(t, "name", "PancakeSwap Token"),
		selector("symbol"):    packOutput(t, "symbol", "CAKE"),
		selector("decimals"):  packOutput(t, "decimals", uint8(18)),
		selector("balanceOf"): packOutput(t, "balanceOf", big.NewInt(1500000)),
	}}
	token := Bind(tokenAddr, caller)
	ctx := context.Background()

	name, err := token.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PancakeSwap Token", name)

	symbol, err := token.Symbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CAKE", symbol)

	decimals, err := token.Decimals(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	balance, err := token.BalanceOf(ctx, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1500000), balance)

	// balanceOf was the last call; its calldata must target the bound
	// contract and carry the owner argument.
	assert.Equal(t, tokenAddr, *caller.lastMsg.To)
	args, err := ABI.Methods["balanceOf"].Inputs.Unpack(caller.lastMsg.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, args[0].(common.Address))
}

func TestReadErrorPropagates(t *testing.T) {
	callErr := errors.New("execution reverted")
	token := Bind(tokenAddr, &fakeCaller{err: callErr})

	_, err := token.Decimals(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, callErr)
}

func TestTransferData(t *testing.T) {
	recipient := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	amount := big.NewInt(2500000)

	data, err := TransferData(recipient, amount)
	require.NoError(t, err)

	// transfer(address,uint256) selector
	assert.Equal(t, "a9059cbb", common.Bytes2Hex(data[:4]))

	args, err := ABI.Methods["transfer"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, recipient, args[0].(common.Address))
	assert.Equal(t, amount, args[1].(*big.Int))
}
