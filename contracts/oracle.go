package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// CompoundOracle reads the comptroller's price oracle. Prices are scaled to
// 36 minus the underlying's decimals.
type CompoundOracle struct {
	contract *bind.BoundContract
}

func NewCompoundOracle(address common.Address, backend Backend) *CompoundOracle {
	return &CompoundOracle{contract: bound(address, mustParseABI(compoundOracleABI), backend)}
}

func (o *CompoundOracle) UnderlyingPrice(ctx context.Context, market common.Address) (*big.Int, error) {
	var out []interface{}
	err := o.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUnderlyingPrice", market)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// AaveOracle reads the Aave price oracle. Prices are ETH-denominated wads.
type AaveOracle struct {
	contract *bind.BoundContract
}

func NewAaveOracle(address common.Address, backend Backend) *AaveOracle {
	return &AaveOracle{contract: bound(address, mustParseABI(aaveOracleABI), backend)}
}

func (o *AaveOracle) AssetPrice(ctx context.Context, asset common.Address) (*big.Int, error) {
	var out []interface{}
	err := o.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAssetPrice", asset)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// DataProvider reads per-reserve configuration from the Aave protocol data
// provider.
type DataProvider struct {
	contract *bind.BoundContract
}

func NewDataProvider(address common.Address, backend Backend) *DataProvider {
	return &DataProvider{contract: bound(address, mustParseABI(dataProviderABI), backend)}
}

// LiquidationBonus returns the reserve's liquidation bonus in basis points.
// A zero bonus marks an asset that cannot be seized as collateral.
func (p *DataProvider) LiquidationBonus(ctx context.Context, underlying common.Address) (*big.Int, error) {
	var out []interface{}
	err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getReserveConfigurationData", underlying)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[3], new(*big.Int)).(**big.Int), nil
}

// Comptroller resolves the Compound oracle address at startup.
type Comptroller struct {
	contract *bind.BoundContract
}

func NewComptroller(address common.Address, backend Backend) *Comptroller {
	return &Comptroller{contract: bound(address, mustParseABI(comptrollerABI), backend)}
}

func (c *Comptroller) Oracle(ctx context.Context) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "oracle")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// LendingPool resolves the Aave addresses provider at startup.
type LendingPool struct {
	contract *bind.BoundContract
}

func NewLendingPool(address common.Address, backend Backend) *LendingPool {
	return &LendingPool{contract: bound(address, mustParseABI(lendingPoolABI), backend)}
}

func (p *LendingPool) AddressesProvider(ctx context.Context) (common.Address, error) {
	var out []interface{}
	err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAddressesProvider")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// AddressesProvider resolves the Aave price oracle at startup.
type AddressesProvider struct {
	contract *bind.BoundContract
}

func NewAddressesProvider(address common.Address, backend Backend) *AddressesProvider {
	return &AddressesProvider{contract: bound(address, mustParseABI(addressesProviderABI), backend)}
}

func (p *AddressesProvider) PriceOracle(ctx context.Context) (common.Address, error) {
	var out []interface{}
	err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getPriceOracle")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
