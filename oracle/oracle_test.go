package oracle

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

var feedAddr = common.HexToAddress("0xB6064eD41d4f67e353768aA239cA86f4F73665a1")

type fakeCaller struct {
	ret []byte
	err error
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ret, nil
}

func packRound(t *testing.T, roundID, answer, startedAt, updatedAt, answeredInRound int64) []byte {
	t.Helper()
	out, err := ABI.Methods["latestRoundData"].Outputs.Pack(
		big.NewInt(roundID),
		big.NewInt(answer),
		big.NewInt(startedAt),
		big.NewInt(updatedAt),
		big.NewInt(answeredInRound),
	)
	require.NoError(t, err)
	return out
}

func TestLatestRoundData(t *testing.T) {
	feed := Bind(feedAddr, &fakeCaller{
		ret: packRound(t, 42, 123456789000, 1700000000, 1700000300, 42),
	})

	round, err := feed.LatestRoundData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), round.RoundID)
	assert.Equal(t, big.NewInt(123456789000), round.Answer)
	assert.Equal(t, big.NewInt(1700000000), round.StartedAt)
	assert.Equal(t, big.NewInt(1700000300), round.UpdatedAt)
	assert.Equal(t, big.NewInt(42), round.AnsweredInRound)
}

func TestLatestPrice(t *testing.T) {
	tests := []struct {
		name   string
		answer int64
		want   float64
	}{
		{name: "typical feed answer", answer: 123456789000, want: 1234.56789},
		{name: "one dollar", answer: 100000000, want: 1.0},
		{name: "sub-cent price", answer: 12345, want: 0.00012345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := Bind(feedAddr, &fakeCaller{
				ret: packRound(t, 1, tt.answer, 1700000000, 1700000300, 1),
			})

			price, err := feed.LatestPrice(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestLatestPriceError(t *testing.T) {
	callErr := errors.New("execution reverted")
	feed := Bind(feedAddr, &fakeCaller{err: callErr})

	_, err := feed.LatestPrice(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, callErr)
}
