package hive

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/steemit/hivelens/pkg/config"
	"github.com/steemit/hivelens/pkg/logging"
	"github.com/steemit/hivelens/pkg/telemetry"
)

// Client wraps the Hive RPC client with the read operations the
// dashboard needs
type Client struct {
	rpc          *RPCClient
	historyLimit int
	logger       *zap.Logger
}

// New creates a new Hive client
func New(cfg *config.HiveConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("hive_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "hive-client"))

	client := &Client{
		rpc:          NewRPCClient(cfg.URL, logger),
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
	}

	logger.Info("Hive client initialized", zap.String("url", cfg.URL))

	return client, nil
}

// GetAccount fetches a single account snapshot, with follower counts
// merged in. Returns (nil, nil) when the account does not exist.
func (c *Client) GetAccount(ctx context.Context, name string) (*Account, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_account")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_accounts", []interface{}{
		[]string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", name, err)
	}

	var accounts []Account
	if err := json.Unmarshal(result, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	account := accounts[0]

	counts, err := c.getFollowCount(ctx, name)
	if err != nil {
		return nil, err
	}
	account.FollowerCount = counts.FollowerCount
	account.FollowingCount = counts.FollowingCount

	return &account, nil
}

func (c *Client) getFollowCount(ctx context.Context, name string) (*FollowCount, error) {
	result, err := c.rpc.Call(ctx, "condenser_api", "get_follow_count", []interface{}{name})
	if err != nil {
		return nil, fmt.Errorf("failed to get follow count for %s: %w", name, err)
	}

	var counts FollowCount
	if err := json.Unmarshal(result, &counts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal follow count: %w", err)
	}

	return &counts, nil
}

// GetDelegations fetches outgoing vesting delegations for an account
func (c *Client) GetDelegations(ctx context.Context, name string) ([]VestingDelegation, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_delegations")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_vesting_delegations", []interface{}{
		name, "", 100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get delegations for %s: %w", name, err)
	}

	var delegations []VestingDelegation
	if err := json.Unmarshal(result, &delegations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delegations: %w", err)
	}

	return delegations, nil
}

// GetRewardHistory fetches historical reward operations for an account,
// in provider order
func (c *Client) GetRewardHistory(ctx context.Context, name string) ([]RewardClaim, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_reward_history")
	defer span.End()

	ops, err := c.getAccountHistory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward history for %s: %w", name, err)
	}

	rewards := make([]RewardClaim, 0)
	for _, op := range ops {
		if claim, ok := parseRewardClaim(op); ok {
			rewards = append(rewards, claim)
		}
	}

	return rewards, nil
}

// GetWalletHistory fetches historical wallet operations for an account,
// in provider order
func (c *Client) GetWalletHistory(ctx context.Context, name string) ([]WalletOp, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_wallet_history")
	defer span.End()

	ops, err := c.getAccountHistory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet history for %s: %w", name, err)
	}

	wallet := make([]WalletOp, 0)
	for _, op := range ops {
		if entry, ok := parseWalletOp(op); ok {
			wallet = append(wallet, entry)
		}
	}

	return wallet, nil
}

// GetDynamicGlobalProperties fetches chain-wide properties
func (c *Client) GetDynamicGlobalProperties(ctx context.Context) (*DynamicGlobalProperties, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_dynamic_global_properties")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_dynamic_global_properties", []interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dynamic global properties: %w", err)
	}

	var props DynamicGlobalProperties
	if err := json.Unmarshal(result, &props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
	}

	return &props, nil
}

// GetMedianHistoryPrice fetches the current median feed price
func (c *Client) GetMedianHistoryPrice(ctx context.Context) (*Price, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_median_history_price")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_current_median_history_price", []interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to get median history price: %w", err)
	}

	var price Price
	if err := json.Unmarshal(result, &price); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price: %w", err)
	}

	return &price, nil
}
