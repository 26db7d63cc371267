package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/steemit/hivelens/internal/hive"
)

// getRewardChart handles GET /api/accounts/:name/rewards.png
func (r *Router) getRewardChart(c *gin.Context) {
	name := c.Param("name")
	if !accountNameRe.MatchString(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account name"})
		return
	}

	rewards, err := r.chain.GetRewardHistory(c.Request.Context(), name)
	if err != nil {
		r.logger.Error("failed to fetch rewards for chart",
			zap.String("account", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch reward history"})
		return
	}

	x, y := rewardSeries(rewards)
	if len(x) < 2 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not enough reward history to chart"})
		return
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Cumulative rewards (VESTS)",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    name,
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		r.logger.Error("failed to render reward chart",
			zap.String("account", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// rewardSeries builds a cumulative vests series from reward history,
// keeping provider order
func rewardSeries(rewards []hive.RewardClaim) ([]time.Time, []float64) {
	x := make([]time.Time, 0, len(rewards))
	y := make([]float64, 0, len(rewards))

	total := decimal.Zero
	for _, claim := range rewards {
		if claim.RewardVests == "" {
			continue
		}
		asset, err := hive.ParseAsset(claim.RewardVests)
		if err != nil {
			continue
		}
		total = total.Add(asset.Amount)

		x = append(x, claim.Timestamp.Time)
		y = append(y, total.InexactFloat64())
	}

	return x, y
}
