package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/morpho-tools/liquidation-bot/contracts"
	"github.com/morpho-tools/liquidation-bot/fetcher"
	"github.com/morpho-tools/liquidation-bot/protocol"
)

// components groups everything the engine needs for one protocol.
type components struct {
	adapter protocol.Adapter
	fetcher fetcher.Fetcher
	morpho  *contracts.Morpho
}

// tokenMeta combines the ERC20 and aToken readers behind the adapter's
// token metadata interface.
type tokenMeta struct {
	*contracts.ERC20
	*contracts.AToken
}

// initCompound wires the Morpho-Compound adapter. The price oracle is
// discovered on chain through the comptroller rather than configured, so a
// comptroller upgrade cannot leave the bot pricing against a stale oracle.
func initCompound(ctx context.Context, cfg Config, backend contracts.Backend, auth *bind.TransactOpts) (components, error) {
	fetch := fetcher.NewCompoundGraphFetcher(cfg.GraphUrl, cfg.BatchSize)
	lens := contracts.NewCompoundLens(cfg.LensAddress, backend)
	morpho := contracts.NewMorphoCompound(cfg.MorphoAddress, backend, auth)

	comptrollerAddress, err := morpho.Comptroller(ctx)
	if err != nil {
		return components{}, fmt.Errorf("fetch comptroller: %w", err)
	}
	oracleAddress, err := contracts.NewComptroller(comptrollerAddress, backend).Oracle(ctx)
	if err != nil {
		return components{}, fmt.Errorf("fetch compound oracle: %w", err)
	}
	oracle := contracts.NewCompoundOracle(oracleAddress, backend)

	return components{
		adapter: protocol.NewCompoundAdapter(lens, oracle),
		fetcher: fetch,
		morpho:  morpho,
	}, nil
}

// initAave wires the Morpho-Aave adapter, discovering the price oracle
// through the lending pool's addresses provider.
func initAave(ctx context.Context, cfg Config, backend contracts.Backend, auth *bind.TransactOpts) (components, error) {
	fetch := fetcher.NewAaveGraphFetcher(cfg.GraphUrl, cfg.BatchSize)
	lens := contracts.NewAaveLens(cfg.LensAddress, backend)
	morpho := contracts.NewMorphoAave(cfg.MorphoAddress, backend, auth)

	poolAddress, err := morpho.Pool(ctx)
	if err != nil {
		return components{}, fmt.Errorf("fetch lending pool: %w", err)
	}
	providerAddress, err := contracts.NewLendingPool(poolAddress, backend).AddressesProvider(ctx)
	if err != nil {
		return components{}, fmt.Errorf("fetch addresses provider: %w", err)
	}
	oracleAddress, err := contracts.NewAddressesProvider(providerAddress, backend).PriceOracle(ctx)
	if err != nil {
		return components{}, fmt.Errorf("fetch aave oracle: %w", err)
	}
	oracle := contracts.NewAaveOracle(oracleAddress, backend)

	reserves := contracts.NewDataProvider(cfg.DataProviderAddress, backend)
	meta := tokenMeta{
		ERC20:  contracts.NewERC20(backend, auth),
		AToken: contracts.NewAToken(backend),
	}

	return components{
		adapter: protocol.NewAaveAdapter(lens, morpho, oracle, reserves, meta),
		fetcher: fetch,
		morpho:  morpho,
	}, nil
}
