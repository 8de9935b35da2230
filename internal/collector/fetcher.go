package collector

import (
	"context"

	"NexSentinel/internal/model"
)

// Fetcher defines the interface for fetching token pair snapshots.
type Fetcher interface {
	FetchPair(ctx context.Context, chainID, tokenAddress string) (*model.TokenPair, error)
	Name() string
}
