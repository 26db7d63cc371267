package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/steemit/hivelens/internal/hive"
)

// Chain-wide values move once per block cycle; a short TTL keeps the
// stats fresh without hammering the node.
const chainInfoTTL = time.Minute

const (
	chainPropsKey  = "chain_props"
	medianPriceKey = "median_price"
)

// chainProps returns dynamic global properties, memoized in Redis
func (r *Router) chainProps(ctx context.Context) (*hive.DynamicGlobalProperties, error) {
	var cached hive.DynamicGlobalProperties
	if err := r.cache.GetJSON(ctx, chainPropsKey, &cached); err == nil {
		return &cached, nil
	}

	props, err := r.chain.GetDynamicGlobalProperties(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, chainPropsKey, props, chainInfoTTL); err != nil {
		r.logger.Debug("failed to memoize chain props", zap.Error(err))
	}

	return props, nil
}

// medianPrice returns the median feed price, memoized in Redis
func (r *Router) medianPrice(ctx context.Context) (*hive.Price, error) {
	var cached hive.Price
	if err := r.cache.GetJSON(ctx, medianPriceKey, &cached); err == nil {
		return &cached, nil
	}

	price, err := r.chain.GetMedianHistoryPrice(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, medianPriceKey, price, chainInfoTTL); err != nil {
		r.logger.Debug("failed to memoize median price", zap.Error(err))
	}

	return price, nil
}
