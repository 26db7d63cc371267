package hive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// historyOp is one decoded get_account_history entry
type historyOp struct {
	Name      string
	Body      json.RawMessage
	Timestamp Time
}

// getAccountHistory fetches and decodes the most recent account history
// window. Provider order (oldest first within the window) is preserved.
func (c *Client) getAccountHistory(ctx context.Context, name string) ([]historyOp, error) {
	result, err := c.rpc.Call(ctx, "condenser_api", "get_account_history", []interface{}{
		name, -1, c.historyLimit,
	})
	if err != nil {
		return nil, err
	}

	// Each entry is a [index, operation] pair
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account history: %w", err)
	}

	ops := make([]historyOp, 0, len(raw))
	for _, pair := range raw {
		var entry struct {
			Timestamp Time               `json:"timestamp"`
			Op        [2]json.RawMessage `json:"op"`
		}
		if err := json.Unmarshal(pair[1], &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}

		var opName string
		if err := json.Unmarshal(entry.Op[0], &opName); err != nil {
			return nil, fmt.Errorf("failed to unmarshal operation name: %w", err)
		}

		ops = append(ops, historyOp{
			Name:      opName,
			Body:      entry.Op[1],
			Timestamp: entry.Timestamp,
		})
	}

	return ops, nil
}

// parseRewardClaim converts reward-type operations into RewardClaim
// entries. Non-reward operations are skipped.
func parseRewardClaim(op historyOp) (RewardClaim, bool) {
	switch op.Name {
	case "claim_reward_balance":
		var body struct {
			RewardHive  string `json:"reward_hive"`
			RewardHBD   string `json:"reward_hbd"`
			RewardVests string `json:"reward_vests"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return RewardClaim{}, false
		}
		return RewardClaim{
			Type:        op.Name,
			RewardHive:  body.RewardHive,
			RewardHBD:   body.RewardHBD,
			RewardVests: body.RewardVests,
			Timestamp:   op.Timestamp,
		}, true

	case "author_reward":
		var body struct {
			HivePayout    string `json:"hive_payout"`
			HBDPayout     string `json:"hbd_payout"`
			VestingPayout string `json:"vesting_payout"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return RewardClaim{}, false
		}
		return RewardClaim{
			Type:        op.Name,
			RewardHive:  body.HivePayout,
			RewardHBD:   body.HBDPayout,
			RewardVests: body.VestingPayout,
			Timestamp:   op.Timestamp,
		}, true

	case "curation_reward":
		var body struct {
			Reward string `json:"reward"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return RewardClaim{}, false
		}
		return RewardClaim{
			Type:        op.Name,
			RewardVests: body.Reward,
			Timestamp:   op.Timestamp,
		}, true
	}

	return RewardClaim{}, false
}

// walletOpTypes are the ledger operation types surfaced in the wallet view
var walletOpTypes = map[string]bool{
	"transfer":              true,
	"transfer_to_vesting":   true,
	"transfer_to_savings":   true,
	"transfer_from_savings": true,
	"claim_reward_balance":  true,
	"interest":              true,
}

// parseWalletOp converts ledger-type operations into WalletOp entries.
// Other operations are skipped.
func parseWalletOp(op historyOp) (WalletOp, bool) {
	if !walletOpTypes[op.Name] {
		return WalletOp{}, false
	}

	switch op.Name {
	case "claim_reward_balance":
		var body struct {
			Account     string `json:"account"`
			RewardHive  string `json:"reward_hive"`
			RewardHBD   string `json:"reward_hbd"`
			RewardVests string `json:"reward_vests"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return WalletOp{}, false
		}
		return WalletOp{
			Type:      op.Name,
			To:        body.Account,
			Amount:    joinNonEmpty(body.RewardHive, body.RewardHBD, body.RewardVests),
			Timestamp: op.Timestamp,
		}, true

	case "interest":
		var body struct {
			Owner    string `json:"owner"`
			Interest string `json:"interest"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return WalletOp{}, false
		}
		return WalletOp{
			Type:      op.Name,
			To:        body.Owner,
			Amount:    body.Interest,
			Timestamp: op.Timestamp,
		}, true

	default:
		var body struct {
			From   string `json:"from"`
			To     string `json:"to"`
			Amount string `json:"amount"`
			Memo   string `json:"memo"`
		}
		if err := json.Unmarshal(op.Body, &body); err != nil {
			return WalletOp{}, false
		}
		return WalletOp{
			Type:      op.Name,
			From:      body.From,
			To:        body.To,
			Amount:    body.Amount,
			Memo:      body.Memo,
			Timestamp: op.Timestamp,
		}, true
	}
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" && !strings.HasPrefix(p, "0.000 ") && !strings.HasPrefix(p, "0.000000 ") {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
