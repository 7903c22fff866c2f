package registry

import "github.com/ethereum/go-ethereum/common"

// Chain ids of the networks shipped in the default registry.
const (
	ChainBSC        uint64 = 56
	ChainBSCTestnet uint64 = 97
)

// Default returns the built-in registry covering BNB Smart Chain mainnet and
// testnet with their commonly used tokens. Oracle addresses are the public
// Chainlink USD feeds on each network; tokens without a feed rely on the
// caller-supplied fallback price function.
func Default() Registry {
	return Registry{
		ChainBSC: {
			Name:           "BNB Smart Chain",
			NativeCurrency: "BNB",
			RPCURL:         "https://bsc-dataseed.binance.org",
			ExplorerURL:    "https://bscscan.com",
			Tokens: []TokenDescriptor{
				{
					Name:    "Wrapped BNB",
					Symbol:  "WBNB",
					Address: common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEF60aF814a3f6F0Ee75"),
					Oracle:  common.HexToAddress("0x0567F2323251f0Aab15c8dFb1967E4e8A7D42aeE"),
					IconURL: "https://cryptologos.cc/logos/bnb-bnb-logo.png",
				},
				{
					Name:    "PancakeSwap Token",
					Symbol:  "CAKE",
					Address: common.HexToAddress("0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82"),
					Oracle:  common.HexToAddress("0xB6064eD41d4f67e353768aA239cA86f4F73665a1"),
					IconURL: "https://cryptologos.cc/logos/pancakeswap-cake-logo.png",
				},
				{
					Name:    "Binance USD",
					Symbol:  "BUSD",
					Address: common.HexToAddress("0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"),
					Oracle:  common.HexToAddress("0xcBb98864Ef56E9042e7d2efef76141f15731B82f"),
					IconURL: "https://cryptologos.cc/logos/binance-usd-busd-logo.png",
				},
			},
		},
		ChainBSCTestnet: {
			Name:           "BNB Smart Chain Testnet",
			NativeCurrency: "tBNB",
			RPCURL:         "https://data-seed-prebsc-1-s1.binance.org:8545",
			ExplorerURL:    "https://testnet.bscscan.com",
			Tokens: []TokenDescriptor{
				{
					Name:    "Wrapped BNB",
					Symbol:  "WBNB",
					Address: common.HexToAddress("0xae13d989daC2f0dEbFf460aC112a837C89BAa7cd"),
					Oracle:  common.HexToAddress("0x2514895c72f50D8bd4B4F9b1110F0D6bD2c97526"),
					IconURL: "https://cryptologos.cc/logos/bnb-bnb-logo.png",
				},
				{
					Name:    "Binance USD",
					Symbol:  "BUSD",
					Address: common.HexToAddress("0xeD24FC36d5Ee211Ea25A80239Fb8C4Cfd80f12Ee"),
					Oracle:  common.HexToAddress("0x9331b55D9830EF609A2aBCfAc0FBCE050A52fdEa"),
					IconURL: "https://cryptologos.cc/logos/binance-usd-busd-logo.png",
				},
			},
		},
	}
}
