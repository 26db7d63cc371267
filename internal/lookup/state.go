package lookup

import (
	"github.com/steemit/hivelens/internal/hive"
)

// Phase is the orchestrator's state machine value
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Bundle holds the four presentation collections of one successful
// lookup. The collections always come from the same invocation; a
// bundle is never assembled from mixed fetches.
type Bundle struct {
	Account     *hive.Account            `json:"account"`
	Rewards     []hive.RewardClaim       `json:"rewards"`
	Delegations []hive.VestingDelegation `json:"delegations"`
	Wallet      []hive.WalletOp          `json:"wallet"`
}

// Status is the state exposed to the presentation layer
type Status struct {
	Phase  Phase   `json:"phase"`
	Bundle *Bundle `json:"bundle,omitempty"`
	Error  string  `json:"error,omitempty"`
}
