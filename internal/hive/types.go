package hive

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout is the timestamp format used by condenser API responses.
// Node timestamps carry no timezone and are always UTC.
const timeLayout = "2006-01-02T15:04:05"

// Time wraps time.Time to handle the node's timezone-less timestamps.
type Time struct {
	time.Time
}

// UnmarshalJSON parses a condenser timestamp
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// MarshalJSON formats the timestamp the way the node does
func (t Time) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Time.UTC().Format(timeLayout) + `"`), nil
}

// Manabar holds voting mana state from condenser_api.get_accounts
type Manabar struct {
	CurrentMana    string `json:"current_mana"`
	LastUpdateTime int64  `json:"last_update_time"`
}

// Account is an account snapshot as returned by condenser_api.get_accounts,
// with follower/following counts merged in from get_follow_count.
type Account struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Created    Time        `json:"created"`
	PostCount  int64       `json:"post_count"`
	Reputation interface{} `json:"reputation"` // number or string depending on node version

	Balance           string `json:"balance"`
	HBDBalance        string `json:"hbd_balance"`
	SavingsBalance    string `json:"savings_balance"`
	SavingsHBDBalance string `json:"savings_hbd_balance"`

	VestingShares          string `json:"vesting_shares"`
	DelegatedVestingShares string `json:"delegated_vesting_shares"`
	ReceivedVestingShares  string `json:"received_vesting_shares"`

	VotingManabar Manabar `json:"voting_manabar"`
	VotingPower   int     `json:"voting_power"`

	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// FollowCount is the condenser_api.get_follow_count response
type FollowCount struct {
	Account        string `json:"account"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}

// RewardClaim is one historical reward event, in provider order
type RewardClaim struct {
	Type        string `json:"type"`
	RewardHive  string `json:"reward_hive,omitempty"`
	RewardHBD   string `json:"reward_hbd,omitempty"`
	RewardVests string `json:"reward_vests,omitempty"`
	Timestamp   Time   `json:"timestamp"`
}

// VestingDelegation is one outgoing stake delegation
type VestingDelegation struct {
	ID                int64  `json:"id"`
	Delegator         string `json:"delegator"`
	Delegatee         string `json:"delegatee"`
	VestingShares     string `json:"vesting_shares"`
	MinDelegationTime Time   `json:"min_delegation_time"`
}

// WalletOp is one historical ledger entry, in provider order
type WalletOp struct {
	Type      string `json:"type"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Timestamp Time   `json:"timestamp"`
}

// DynamicGlobalProperties holds the chain-wide values needed for
// vests-to-HP conversion
type DynamicGlobalProperties struct {
	HeadBlockNumber       int64  `json:"head_block_number"`
	Time                  Time   `json:"time"`
	TotalVestingFundHive  string `json:"total_vesting_fund_hive"`
	TotalVestingShares    string `json:"total_vesting_shares"`
}

// Price is the median history price from the feed
type Price struct {
	Base  string `json:"base"`  // HBD amount
	Quote string `json:"quote"` // HIVE amount
}
