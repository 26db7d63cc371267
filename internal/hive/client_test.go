package hive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/steemit/hivelens/pkg/config"
)

// newTestNode serves canned JSON-RPC results keyed by method name
func newTestNode(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RPCRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			return
		}

		result, ok := results[req.Method]
		if !ok {
			json.NewEncoder(w).Encode(RPCResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error:   &RPCError{Code: -32601, Message: "Method not found: " + req.Method},
			})
			return
		}

		json.NewEncoder(w).Encode(RPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  json.RawMessage(result),
		})
	}))
}

func newTestClient(t *testing.T, node *httptest.Server) *Client {
	t.Helper()
	client, err := New(&config.HiveConfig{
		URL:           node.URL,
		LookupTimeout: 10 * time.Second,
		HistoryLimit:  1000,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

const aliceJSON = `{
	"id": 1,
	"name": "alice",
	"created": "2016-03-24T17:02:30",
	"post_count": 42,
	"reputation": "8522409592034",
	"balance": "12.345 HIVE",
	"hbd_balance": "1.000 HBD",
	"savings_balance": "0.000 HIVE",
	"savings_hbd_balance": "0.000 HBD",
	"vesting_shares": "10000.000000 VESTS",
	"delegated_vesting_shares": "100.000000 VESTS",
	"received_vesting_shares": "50.000000 VESTS",
	"voting_manabar": {"current_mana": "9950000000", "last_update_time": 1700000000},
	"voting_power": 9800
}`

func TestGetAccount(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_accounts":     `[` + aliceJSON + `]`,
		"condenser_api.get_follow_count": `{"account":"alice","follower_count":120,"following_count":80}`,
	})
	defer node.Close()

	client := newTestClient(t, node)

	account, err := client.GetAccount(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if account == nil {
		t.Fatal("GetAccount() returned nil for existing account")
	}

	if account.Name != "alice" {
		t.Errorf("name = %q, want alice", account.Name)
	}
	if account.PostCount != 42 {
		t.Errorf("post count = %d, want 42", account.PostCount)
	}
	if account.Balance != "12.345 HIVE" {
		t.Errorf("balance = %q", account.Balance)
	}
	if account.FollowerCount != 120 || account.FollowingCount != 80 {
		t.Errorf("follow counts = %d/%d, want 120/80", account.FollowerCount, account.FollowingCount)
	}

	created := account.Created.Time
	if created.Year() != 2016 || created.Month() != time.March {
		t.Errorf("created = %v, want March 2016", created)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_accounts": `[]`,
	})
	defer node.Close()

	client := newTestClient(t, node)

	account, err := client.GetAccount(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if account != nil {
		t.Errorf("GetAccount() = %+v, want nil for missing account", account)
	}
}

const historyJSON = `[
	[100, {"trx_id": "a1", "block": 1, "timestamp": "2023-01-01T00:00:00",
		"op": ["transfer", {"from": "bob", "to": "alice", "amount": "5.000 HIVE", "memo": "hi"}]}],
	[101, {"trx_id": "a2", "block": 2, "timestamp": "2023-01-02T00:00:00",
		"op": ["vote", {"voter": "alice", "author": "bob", "permlink": "p", "weight": 10000}]}],
	[102, {"trx_id": "a3", "block": 3, "timestamp": "2023-01-03T00:00:00",
		"op": ["claim_reward_balance", {"account": "alice", "reward_hive": "0.000 HIVE", "reward_hbd": "0.012 HBD", "reward_vests": "30.000000 VESTS"}]}],
	[103, {"trx_id": "a4", "block": 4, "timestamp": "2023-01-04T00:00:00",
		"op": ["curation_reward", {"curator": "alice", "reward": "1.500000 VESTS", "comment_author": "bob", "comment_permlink": "p"}]}],
	[104, {"trx_id": "a5", "block": 5, "timestamp": "2023-01-05T00:00:00",
		"op": ["transfer_to_vesting", {"from": "alice", "to": "alice", "amount": "2.000 HIVE"}]}]
]`

func TestGetRewardHistory(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_account_history": historyJSON,
	})
	defer node.Close()

	client := newTestClient(t, node)

	rewards, err := client.GetRewardHistory(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetRewardHistory() error = %v", err)
	}

	if len(rewards) != 2 {
		t.Fatalf("len(rewards) = %d, want 2", len(rewards))
	}

	// Provider order is preserved
	if rewards[0].Type != "claim_reward_balance" {
		t.Errorf("rewards[0].Type = %q", rewards[0].Type)
	}
	if rewards[0].RewardHBD != "0.012 HBD" || rewards[0].RewardVests != "30.000000 VESTS" {
		t.Errorf("rewards[0] amounts = %q/%q", rewards[0].RewardHBD, rewards[0].RewardVests)
	}
	if rewards[1].Type != "curation_reward" || rewards[1].RewardVests != "1.500000 VESTS" {
		t.Errorf("rewards[1] = %+v", rewards[1])
	}
}

func TestGetWalletHistory(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_account_history": historyJSON,
	})
	defer node.Close()

	client := newTestClient(t, node)

	wallet, err := client.GetWalletHistory(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetWalletHistory() error = %v", err)
	}

	// The vote op is not a ledger entry
	if len(wallet) != 3 {
		t.Fatalf("len(wallet) = %d, want 3", len(wallet))
	}

	if wallet[0].Type != "transfer" || wallet[0].From != "bob" || wallet[0].Amount != "5.000 HIVE" {
		t.Errorf("wallet[0] = %+v", wallet[0])
	}
	if wallet[1].Type != "claim_reward_balance" {
		t.Errorf("wallet[1].Type = %q", wallet[1].Type)
	}
	// Zero-valued reward components are dropped from the summary
	if wallet[1].Amount != "0.012 HBD, 30.000000 VESTS" {
		t.Errorf("wallet[1].Amount = %q", wallet[1].Amount)
	}
	if wallet[2].Type != "transfer_to_vesting" || wallet[2].Amount != "2.000 HIVE" {
		t.Errorf("wallet[2] = %+v", wallet[2])
	}
}

func TestGetDelegations(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_vesting_delegations": `[
			{"id": 9, "delegator": "alice", "delegatee": "bob",
			 "vesting_shares": "100.000000 VESTS", "min_delegation_time": "2023-06-01T00:00:00"}
		]`,
	})
	defer node.Close()

	client := newTestClient(t, node)

	delegations, err := client.GetDelegations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetDelegations() error = %v", err)
	}

	if len(delegations) != 1 {
		t.Fatalf("len(delegations) = %d, want 1", len(delegations))
	}
	d := delegations[0]
	if d.Delegatee != "bob" || d.VestingShares != "100.000000 VESTS" {
		t.Errorf("delegation = %+v", d)
	}
	if d.MinDelegationTime.Time.Month() != time.June {
		t.Errorf("min delegation time = %v", d.MinDelegationTime.Time)
	}
}

func TestGetDynamicGlobalProperties(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_dynamic_global_properties": `{
			"head_block_number": 80000000,
			"time": "2024-01-01T12:00:00",
			"total_vesting_fund_hive": "150000000.000 HIVE",
			"total_vesting_shares": "270000000000.000000 VESTS"
		}`,
	})
	defer node.Close()

	client := newTestClient(t, node)

	props, err := client.GetDynamicGlobalProperties(context.Background())
	if err != nil {
		t.Fatalf("GetDynamicGlobalProperties() error = %v", err)
	}
	if props.HeadBlockNumber != 80000000 {
		t.Errorf("head block = %d", props.HeadBlockNumber)
	}
	if props.TotalVestingShares != "270000000000.000000 VESTS" {
		t.Errorf("total vesting shares = %q", props.TotalVestingShares)
	}
}

func TestGetMedianHistoryPrice(t *testing.T) {
	node := newTestNode(t, map[string]string{
		"condenser_api.get_current_median_history_price": `{"base": "0.250 HBD", "quote": "1.000 HIVE"}`,
	})
	defer node.Close()

	client := newTestClient(t, node)

	price, err := client.GetMedianHistoryPrice(context.Background())
	if err != nil {
		t.Fatalf("GetMedianHistoryPrice() error = %v", err)
	}
	if price.Base != "0.250 HBD" || price.Quote != "1.000 HIVE" {
		t.Errorf("price = %+v", price)
	}
}
