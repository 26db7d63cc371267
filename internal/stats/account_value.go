package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/steemit/hivelens/internal/hive"
)

// Valuation is the estimated account value breakdown. HBD is treated
// as one USD; liquid and staked HIVE are priced at the median feed.
type Valuation struct {
	Hive      decimal.Decimal `json:"hive"`
	HivePower decimal.Decimal `json:"hive_power"`
	HBD       decimal.Decimal `json:"hbd"`
	TotalUSD  decimal.Decimal `json:"total_usd"`
}

// EstimatedAccountValue computes the account's estimated value from its
// balances, the chain's vesting fund ratio, and the median feed price.
func EstimatedAccountValue(account *hive.Account, props *hive.DynamicGlobalProperties, price *hive.Price) (*Valuation, error) {
	balance, err := hive.ParseAsset(account.Balance)
	if err != nil {
		return nil, fmt.Errorf("bad balance: %w", err)
	}
	savings, err := hive.ParseAsset(account.SavingsBalance)
	if err != nil {
		return nil, fmt.Errorf("bad savings balance: %w", err)
	}
	hbd, err := hive.ParseAsset(account.HBDBalance)
	if err != nil {
		return nil, fmt.Errorf("bad hbd balance: %w", err)
	}
	savingsHBD, err := hive.ParseAsset(account.SavingsHBDBalance)
	if err != nil {
		return nil, fmt.Errorf("bad savings hbd balance: %w", err)
	}

	hp, err := VestsToHive(account.VestingShares, props)
	if err != nil {
		return nil, err
	}

	feed, err := feedPrice(price)
	if err != nil {
		return nil, err
	}

	liquidHive := balance.Amount.Add(savings.Amount)
	totalHBD := hbd.Amount.Add(savingsHBD.Amount)
	totalUSD := liquidHive.Add(hp).Mul(feed).Add(totalHBD)

	return &Valuation{
		Hive:      liquidHive.Round(3),
		HivePower: hp.Round(3),
		HBD:       totalHBD.Round(3),
		TotalUSD:  totalUSD.Round(2),
	}, nil
}

// VestsToHive converts a vesting-share amount string into HIVE using
// the global vesting fund ratio
func VestsToHive(vestingShares string, props *hive.DynamicGlobalProperties) (decimal.Decimal, error) {
	vests, err := hive.ParseAsset(vestingShares)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad vesting shares: %w", err)
	}
	fund, err := hive.ParseAsset(props.TotalVestingFundHive)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad vesting fund: %w", err)
	}
	totalVests, err := hive.ParseAsset(props.TotalVestingShares)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad total vesting shares: %w", err)
	}
	if totalVests.Amount.IsZero() {
		return decimal.Zero, fmt.Errorf("total vesting shares is zero")
	}
	return vests.Amount.Mul(fund.Amount).Div(totalVests.Amount), nil
}

// feedPrice is HBD per HIVE from the median history price
func feedPrice(price *hive.Price) (decimal.Decimal, error) {
	base, err := hive.ParseAsset(price.Base)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price base: %w", err)
	}
	quote, err := hive.ParseAsset(price.Quote)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price quote: %w", err)
	}
	if quote.Amount.IsZero() {
		return decimal.Zero, fmt.Errorf("price quote is zero")
	}
	return base.Amount.Div(quote.Amount), nil
}
