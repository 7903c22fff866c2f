// Package wallet provides the signer abstraction used by the activation
// engine: an authenticated identity bound to one network, able to read
// contract state and submit transactions on behalf of its address.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

// ErrNoProvider is returned when a wallet operation requires a connected
// provider and none is attached.
var ErrNoProvider = errors.New("wallet: no provider connected")

// Signer is an authenticated identity capable of reading contract state and
// submitting transactions on one network. Implementations resolve the active
// chain id from their connected provider.
type Signer interface {
	// Address returns the account address the signer acts for
	Address() common.Address

	// ChainID resolves the chain id of the connected network.
	// Fails with ErrNoProvider when no provider is attached.
	ChainID(ctx context.Context) (uint64, error)

	// CallContract executes a read-only contract call
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)

	// Transact submits a contract transaction carrying the given calldata and
	// returns the pending transaction. Confirmation is the caller's concern.
	Transact(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error)
}

// Provider is the subset of the JSON-RPC client the wallet needs.
// *ethclient.Client satisfies it.
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Wallet is the default Signer implementation: an ECDSA key plus a JSON-RPC
// provider.
type Wallet struct {
	key      *ecdsa.PrivateKey
	address  common.Address
	provider Provider
}

// NewWallet creates a wallet from a hex-encoded private key and an optional
// provider. A wallet without a provider can report its address but fails all
// network-bound operations with ErrNoProvider.
func NewWallet(privateKeyHex string, provider Provider) (*Wallet, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid private key: %w", err)
	}

	return &Wallet{
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		provider: provider,
	}, nil
}

// Dial connects to the given JSON-RPC endpoint and returns a wallet bound to
// it.
func Dial(ctx context.Context, rpcURL, privateKeyHex string) (*Wallet, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("wallet: dialing %s: %w", rpcURL, err)
	}

	wallet, err := NewWallet(privateKeyHex, client)
	if err != nil {
		client.Close()
		return nil, err
	}

	logrus.Debugf("Wallet %s connected to %s", wallet.address.Hex(), rpcURL)
	return wallet, nil
}

// Address returns the account address derived from the wallet's key.
func (w *Wallet) Address() common.Address {
	return w.address
}

// ChainID resolves the chain id of the connected network.
func (w *Wallet) ChainID(ctx context.Context) (uint64, error) {
	if w.provider == nil {
		return 0, ErrNoProvider
	}

	chainID, err := w.provider.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("wallet: resolving chain id: %w", err)
	}
	return chainID.Uint64(), nil
}

// CallContract executes a read-only contract call through the provider.
func (w *Wallet) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if w.provider == nil {
		return nil, ErrNoProvider
	}
	return w.provider.CallContract(ctx, msg, blockNumber)
}

// Transact builds, signs and submits a transaction carrying the given
// calldata to the target contract. It returns the pending transaction without
// waiting for a receipt.
func (w *Wallet) Transact(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	if w.provider == nil {
		return nil, ErrNoProvider
	}

	chainID, err := w.provider.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet: resolving chain id: %w", err)
	}

	nonce, err := w.provider.PendingNonceAt(ctx, w.address)
	if err != nil {
		return nil, fmt.Errorf("wallet: fetching nonce: %w", err)
	}

	gasPrice, err := w.provider.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet: fetching gas price: %w", err)
	}

	gasLimit, err := w.provider.EstimateGas(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("wallet: estimating gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
	if err != nil {
		return nil, fmt.Errorf("wallet: signing transaction: %w", err)
	}

	if err := w.provider.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("wallet: sending transaction: %w", err)
	}

	logrus.Debugf("Submitted transaction %s to %s", signed.Hash().Hex(), to.Hex())
	return signed, nil
}
