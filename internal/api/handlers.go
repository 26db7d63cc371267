package api

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/steemit/hivelens/internal/hive"
	"github.com/steemit/hivelens/internal/stats"
)

// Hive account names: 3-16 chars, lowercase alphanumeric with dots and
// dashes, starting with a letter
var accountNameRe = regexp.MustCompile(`^[a-z][a-z0-9.-]{2,15}$`)

// accountResponse is the full dashboard payload for one account
type accountResponse struct {
	Account     interface{}   `json:"account"`
	Rewards     interface{}   `json:"rewards"`
	Delegations interface{}   `json:"delegations"`
	Wallet      interface{}   `json:"wallet"`
	Stats       *accountStats `json:"stats,omitempty"`
}

type accountStats struct {
	VotingPower    float64          `json:"voting_power"`
	EstimatedValue *stats.Valuation `json:"estimated_value,omitempty"`
}

// getAccount handles GET /api/accounts/:name
func (r *Router) getAccount(c *gin.Context) {
	name := c.Param("name")
	// Invalid names are rejected before the orchestrator is invoked
	if !accountNameRe.MatchString(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account name"})
		return
	}

	bundle, err := r.lookup.Lookup(c.Request.Context(), name)
	if err != nil {
		c.JSON(statusForLookupError(err), gin.H{"error": err.Error()})
		return
	}

	resp := accountResponse{
		Account:     bundle.Account,
		Rewards:     bundle.Rewards,
		Delegations: bundle.Delegations,
		Wallet:      bundle.Wallet,
	}

	// Derived statistics are best-effort decoration; a feed outage
	// should not hide the account data
	if derived, err := r.deriveStats(c, bundle.Account); err != nil {
		r.logger.Warn("failed to derive account stats",
			zap.String("account", name), zap.Error(err))
	} else {
		resp.Stats = derived
	}

	c.JSON(http.StatusOK, resp)
}

func (r *Router) deriveStats(c *gin.Context, account *hive.Account) (*accountStats, error) {
	ctx := c.Request.Context()

	power, err := stats.VotingPower(account, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	props, err := r.chainProps(ctx)
	if err != nil {
		return nil, err
	}
	price, err := r.medianPrice(ctx)
	if err != nil {
		return nil, err
	}

	value, err := stats.EstimatedAccountValue(account, props, price)
	if err != nil {
		return nil, err
	}

	return &accountStats{
		VotingPower:    power,
		EstimatedValue: value,
	}, nil
}

// getStatus handles GET /api/status
func (r *Router) getStatus(c *gin.Context) {
	status := r.lookup.Status()
	c.JSON(http.StatusOK, gin.H{
		"phase":  status.Phase.String(),
		"error":  status.Error,
		"bundle": status.Bundle,
	})
}

// getRecentSearches handles GET /api/searches/recent
func (r *Router) getRecentSearches(c *gin.Context) {
	if r.audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search log disabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := r.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		r.logger.Error("failed to list recent searches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list searches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": entries})
}
