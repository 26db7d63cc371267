package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/steemit/hivelens/internal/hive"
)

// voteRegenerationSeconds is the full manabar regeneration window
const voteRegenerationSeconds = 5 * 24 * 60 * 60

// VotingPower computes the account's current voting power percentage in
// [0, 100], regenerating the manabar from its last update to the given
// instant.
func VotingPower(account *hive.Account, at time.Time) (float64, error) {
	maxMana, err := effectiveVests(account)
	if err != nil {
		return 0, err
	}
	// Manabar values are raw integer units: vests scaled by 10^6
	maxMana = maxMana.Shift(6).Truncate(0)

	if maxMana.IsZero() {
		// No stake means nothing to drain
		return 100, nil
	}

	current, err := decimal.NewFromString(account.VotingManabar.CurrentMana)
	if err != nil {
		return 0, err
	}

	elapsed := at.Unix() - account.VotingManabar.LastUpdateTime
	if elapsed > 0 {
		regenerated := maxMana.
			Mul(decimal.NewFromInt(elapsed)).
			Div(decimal.NewFromInt(voteRegenerationSeconds))
		current = current.Add(regenerated)
	}

	if current.GreaterThan(maxMana) {
		current = maxMana
	}
	if current.IsNegative() {
		current = decimal.Zero
	}

	pct, _ := current.Mul(decimal.NewFromInt(100)).Div(maxMana).Float64()
	return pct, nil
}

// effectiveVests is the account's own stake plus received delegations
// minus outgoing delegations
func effectiveVests(account *hive.Account) (decimal.Decimal, error) {
	own, err := hive.ParseAsset(account.VestingShares)
	if err != nil {
		return decimal.Zero, err
	}
	received, err := hive.ParseAsset(account.ReceivedVestingShares)
	if err != nil {
		return decimal.Zero, err
	}
	delegated, err := hive.ParseAsset(account.DelegatedVestingShares)
	if err != nil {
		return decimal.Zero, err
	}
	return own.Amount.Add(received.Amount).Sub(delegated.Amount), nil
}
