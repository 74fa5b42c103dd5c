package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	protocolEnvKey            = "PROTOCOL"
	ethRpcUrlEnvKey           = "ETH_RPC_URL"
	graphUrlEnvKey            = "GRAPH_URL"
	morphoAddressEnvKey       = "MORPHO_ADDRESS"
	lensAddressEnvKey         = "LENS_ADDRESS"
	dataProviderEnvKey        = "PROTOCOL_DATA_PROVIDER_ADDRESS"
	liquidatorAddressEnvKey   = "LIQUIDATOR_ADDRESS"
	profitableThresholdEnvKey = "PROFITABLE_THRESHOLD"
	liquidationIntervalEnvKey = "LIQUIDATION_INTERVAL"
	batchSizeEnvKey           = "BATCH_SIZE"
	privateKeyEnvKey          = "PRIVATE_KEY"
	secretIDEnvKey            = "SECRET_ID"
	healthListenAddrEnvKey    = "HEALTH_CHECK_LISTEN_ADDR"
	slackTokenEnvKey          = "SLACK_TOKEN"
	slackChannelEnvKey        = "SLACK_CHANNEL_ID"
	approveMaxEnvKey          = "APPROVE_MAX"
	stakeTokensEnvKey         = "STAKE_TOKENS"
)

// Supported protocol selectors.
const (
	ProtocolCompound = "compound"
	ProtocolAave     = "aave"
)

// Mainnet deployments, overridable from the environment.
var (
	defaultMorphoCompound = common.HexToAddress("0x8888882f8f843896699869179fB6E4f7e3B58888")
	defaultCompoundLens   = common.HexToAddress("0x930f1b46e1d081ec1524efd95752be3ece51ef67")

	defaultMorphoAave       = common.HexToAddress("0x777777c9898D384F785Ee44Acfe945efDFf5f3E0")
	defaultAaveLens         = common.HexToAddress("0x507fA343d0A90786d86C7cd885f5C49263A91FF4")
	defaultDataProvider     = common.HexToAddress("0x057835Ad21a177dbdd3090bB1CAE03EaCF78Fc6d")
	defaultCompoundGraphURL = "https://api.thegraph.com/subgraphs/name/morpho-labs/morpho-compound-mainnet"
	defaultAaveGraphURL     = "https://api.thegraph.com/subgraphs/name/morpho-labs/morpho-aavev2-mainnet"
)

// ConfigLoader provides an interface for
// loading config values from a provided key
type ConfigLoader interface {
	Get(key string) string
}

// Config provides application configuration
type Config struct {
	Protocol            string
	EthRpcUrl           string
	GraphUrl            string
	MorphoAddress       common.Address
	LensAddress         common.Address
	DataProviderAddress common.Address
	LiquidatorAddress   common.Address
	ProfitableThreshold *big.Int
	LiquidationInterval time.Duration
	BatchSize           int
	PrivateKey          string
	SecretID            string
	HealthListenAddr    string
	SlackToken          string
	SlackChannelID      string
	ApproveMax          bool
	StakeTokens         bool
}

// ReadOnly reports whether the bot has no way to sign transactions and
// should log liquidation opportunities instead of executing them.
func (c Config) ReadOnly() bool {
	return c.PrivateKey == "" && c.SecretID == ""
}

// LoadConfig loads key values from a ConfigLoader
// and returns a new Config
func LoadConfig(loader ConfigLoader) (Config, error) {
	protocol := loader.Get(protocolEnvKey)
	if protocol == "" {
		protocol = ProtocolCompound
	}
	if protocol != ProtocolCompound && protocol != ProtocolAave {
		return Config{}, fmt.Errorf("unknown protocol %q", protocol)
	}

	rpcUrl := loader.Get(ethRpcUrlEnvKey)
	if rpcUrl == "" {
		return Config{}, fmt.Errorf("%s not set", ethRpcUrlEnvKey)
	}

	graphUrl := loader.Get(graphUrlEnvKey)
	if graphUrl == "" {
		if protocol == ProtocolCompound {
			graphUrl = defaultCompoundGraphURL
		} else {
			graphUrl = defaultAaveGraphURL
		}
	}

	morphoAddress := defaultMorphoCompound
	lensAddress := defaultCompoundLens
	if protocol == ProtocolAave {
		morphoAddress = defaultMorphoAave
		lensAddress = defaultAaveLens
	}
	if raw := loader.Get(morphoAddressEnvKey); raw != "" {
		if !common.IsHexAddress(raw) {
			return Config{}, fmt.Errorf("invalid %s %q", morphoAddressEnvKey, raw)
		}
		morphoAddress = common.HexToAddress(raw)
	}
	if raw := loader.Get(lensAddressEnvKey); raw != "" {
		if !common.IsHexAddress(raw) {
			return Config{}, fmt.Errorf("invalid %s %q", lensAddressEnvKey, raw)
		}
		lensAddress = common.HexToAddress(raw)
	}

	dataProviderAddress := defaultDataProvider
	if raw := loader.Get(dataProviderEnvKey); raw != "" {
		if !common.IsHexAddress(raw) {
			return Config{}, fmt.Errorf("invalid %s %q", dataProviderEnvKey, raw)
		}
		dataProviderAddress = common.HexToAddress(raw)
	}

	var liquidatorAddress common.Address
	if raw := loader.Get(liquidatorAddressEnvKey); raw != "" {
		if !common.IsHexAddress(raw) {
			return Config{}, fmt.Errorf("invalid %s %q", liquidatorAddressEnvKey, raw)
		}
		liquidatorAddress = common.HexToAddress(raw)
	}

	threshold := loader.Get(profitableThresholdEnvKey)
	if threshold == "" {
		threshold = "1"
	}
	thresholdDec, err := decimal.NewFromString(threshold)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", profitableThresholdEnvKey, threshold, err)
	}
	profitableThreshold := thresholdDec.Shift(18).BigInt()

	liquidationInterval, err := time.ParseDuration(loader.Get(liquidationIntervalEnvKey))
	if err != nil {
		liquidationInterval = time.Duration(10 * time.Minute)
	}

	batchSize := 500
	if raw := loader.Get(batchSizeEnvKey); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &batchSize); err != nil || batchSize <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q", batchSizeEnvKey, raw)
		}
	}

	return Config{
		Protocol:            protocol,
		EthRpcUrl:           rpcUrl,
		GraphUrl:            graphUrl,
		MorphoAddress:       morphoAddress,
		LensAddress:         lensAddress,
		DataProviderAddress: dataProviderAddress,
		LiquidatorAddress:   liquidatorAddress,
		ProfitableThreshold: profitableThreshold,
		LiquidationInterval: liquidationInterval,
		BatchSize:           batchSize,
		PrivateKey:          loader.Get(privateKeyEnvKey),
		SecretID:            loader.Get(secretIDEnvKey),
		HealthListenAddr:    loader.Get(healthListenAddrEnvKey),
		SlackToken:          loader.Get(slackTokenEnvKey),
		SlackChannelID:      loader.Get(slackChannelEnvKey),
		ApproveMax:          loader.Get(approveMaxEnvKey) != "false",
		StakeTokens:         loader.Get(stakeTokensEnvKey) == "true",
	}, nil
}

// EnvLoader loads keys from os environment
type EnvLoader struct {
}

// Get retrieves key from environment
func (l *EnvLoader) Get(key string) string {
	return os.Getenv(key)
}
