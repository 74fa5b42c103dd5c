package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/morpho-tools/liquidation-bot/alert"
	"github.com/morpho-tools/liquidation-bot/bot"
	"github.com/morpho-tools/liquidation-bot/contracts"
	"github.com/morpho-tools/liquidation-bot/handler"
	"github.com/morpho-tools/liquidation-bot/logging"
	"github.com/morpho-tools/liquidation-bot/secrets"
	"github.com/morpho-tools/liquidation-bot/swap"
)

func main() {
	// optional, deployments configure through the environment directly
	_ = godotenv.Load()

	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	config, err := LoadConfig(&EnvLoader{})
	if err != nil {
		zlog.Fatal().Err(err).Send()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ethclient.DialContext(ctx, config.EthRpcUrl)
	if err != nil {
		zlog.Fatal().Err(err).Msg("dial rpc")
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("fetch chain id")
	}
	zlog.Info().Str("chainId", chainID.String()).Str("protocol", config.Protocol).Msg("starting liquidation bot")

	var auth *bind.TransactOpts
	var signer common.Address
	if !config.ReadOnly() {
		key := config.PrivateKey
		if key == "" {
			manager, err := secrets.NewManager(ctx)
			if err != nil {
				zlog.Fatal().Err(err).Msg("init secrets manager")
			}
			key, err = manager.Fetch(ctx, config.SecretID)
			if err != nil {
				zlog.Fatal().Err(err).Msg("fetch private key")
			}
		}
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(key), "0x"))
		if err != nil {
			zlog.Fatal().Err(err).Msg("parse private key")
		}
		auth, err = bind.NewKeyedTransactorWithChainID(privateKey, chainID)
		if err != nil {
			zlog.Fatal().Err(err).Msg("build transactor")
		}
		signer = auth.From
		zlog.Info().Str("signer", signer.Hex()).Send()
	}

	var parts components
	switch config.Protocol {
	case ProtocolAave:
		parts, err = initAave(ctx, config, client, auth)
	default:
		parts, err = initCompound(ctx, config, client, auth)
	}
	if err != nil {
		zlog.Fatal().Err(err).Msg("init protocol")
	}

	logger := logging.NewZerologLogger(zlog)

	var h handler.Handler
	switch {
	case config.ReadOnly():
		zlog.Info().Msg("no signing key configured, running read only")
		h = handler.NewReadOnlyHandler(logger)
	case config.LiquidatorAddress != (common.Address{}):
		liquidator := contracts.NewLiquidator(config.LiquidatorAddress, client, auth)
		h = handler.NewFlashHandler(liquidator, client, logger, handler.FlashHandlerOptions{
			StakeTokens: config.StakeTokens,
		})
	default:
		erc20 := contracts.NewERC20(client, auth)
		options := handler.DefaultEOAHandlerOptions
		options.ApproveMax = config.ApproveMax
		h = handler.NewEOAHandler(parts.morpho, erc20, client, signer, logger, options)
	}

	var alerter alert.Alerter
	if config.SlackToken != "" && config.SlackChannelID != "" {
		alerter = alert.NewSlackAlerter(config.SlackToken, config.SlackChannelID)
	}

	pools := swap.NewPoolFetcher(swap.DefaultPoolGraphURL)

	engine := bot.NewEngine(logger, parts.fetcher, parts.adapter, h, pools, alerter, bot.Settings{
		ProfitableThresholdUSD: config.ProfitableThreshold,
	})

	if config.HealthListenAddr != "" {
		healthServer := newHealthServer(config.HealthListenAddr, client, zlog)
		go healthServer.Run(ctx)
	}

	for {
		if err := engine.Run(ctx); err != nil {
			zlog.Error().Err(err).Msg("liquidation cycle failed")
		}

		select {
		case <-ctx.Done():
			zlog.Info().Msg("shutting down")
			return
		case <-time.After(config.LiquidationInterval):
		}
	}
}
