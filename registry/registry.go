// Package registry defines the static table of supported networks and their
// token lists. The registry is fixed configuration: it is built once by the
// host application and never mutated afterwards.
package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TokenDescriptor describes one ERC-20 token on a specific network.
// Identity is the contract address; all fields are immutable.
type TokenDescriptor struct {
	// Name is the full display name of the token
	Name string `json:"name"`

	// Symbol is the short ticker, e.g. CAKE or BUSD
	Symbol string `json:"symbol"`

	// Address is the token contract address
	Address common.Address `json:"address"`

	// Oracle is the Chainlink price feed address for this token.
	// The zero address means the token has no on-chain price source.
	Oracle common.Address `json:"oracle,omitempty"`

	// IconURL points to a logo image for display purposes
	IconURL string `json:"icon_url,omitempty"`
}

// HasOracle reports whether the descriptor carries an on-chain price feed.
func (t TokenDescriptor) HasOracle() bool {
	return t.Oracle != (common.Address{})
}

// NetworkDescriptor describes one supported blockchain network.
// Identity is the chain id it is registered under.
type NetworkDescriptor struct {
	// Name is the human-readable network name
	Name string `json:"name"`

	// NativeCurrency is the symbol of the chain's gas currency
	NativeCurrency string `json:"native_currency"`

	// RPCURL is the JSON-RPC endpoint used to reach the network
	RPCURL string `json:"rpc_url"`

	// ExplorerURL is the block explorer base URL
	ExplorerURL string `json:"explorer_url"`

	// Tokens is the ordered list of tokens configured for this network
	Tokens []TokenDescriptor `json:"tokens"`
}

// Registry maps chain ids to network descriptors. It is read-only after
// construction; lookups on absent chain ids fail with UnsupportedNetworkError.
type Registry map[uint64]NetworkDescriptor

// UnsupportedNetworkError reports a lookup for a chain id the registry does
// not contain.
type UnsupportedNetworkError struct {
	ChainID uint64
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("registry: network with chain id %d is not supported", e.ChainID)
}

// Lookup resolves a chain id to its network descriptor.
func (r Registry) Lookup(chainID uint64) (NetworkDescriptor, error) {
	network, ok := r[chainID]
	if !ok {
		return NetworkDescriptor{}, &UnsupportedNetworkError{ChainID: chainID}
	}
	return network, nil
}

// Validate checks that every network entry is well formed: a non-empty RPC
// endpoint and no zero-address or duplicate token contracts. Intended to be
// called once at startup on hand-written registries.
func (r Registry) Validate() error {
	for chainID, network := range r {
		if network.RPCURL == "" {
			return fmt.Errorf("registry: network %d (%s) has no RPC URL", chainID, network.Name)
		}

		seen := make(map[common.Address]bool, len(network.Tokens))
		for _, token := range network.Tokens {
			if token.Address == (common.Address{}) {
				return fmt.Errorf("registry: token %s on network %d has a zero contract address", token.Symbol, chainID)
			}
			if seen[token.Address] {
				return fmt.Errorf("registry: duplicate token contract %s on network %d", token.Address.Hex(), chainID)
			}
			seen[token.Address] = true
		}
	}
	return nil
}
