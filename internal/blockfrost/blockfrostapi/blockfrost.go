package blockfrostapi

import (
	"context"
	"net/http"
	"time"

	"github.com/blockfrost/blockfrost-go"
	bf "github.com/kilnfi/cardano-pool-stakes/internal/blockfrost"
)

// MaxPageSize is the largest page the Blockfrost API serves.
const MaxPageSize = 100

type Client struct {
	blockfrost blockfrost.APIClient
	pageSize   int
}

var _ bf.Client = (*Client)(nil)

type ClientOptions struct {
	ProjectID   string
	Server      string
	MaxRoutines int
	Timeout     time.Duration
	PageSize    int
}

func NewClient(opts ClientOptions) *Client {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &Client{
		blockfrost: blockfrost.NewAPIClient(
			blockfrost.APIClientOptions{
				ProjectID:   opts.ProjectID,
				Server:      opts.Server,
				MaxRoutines: opts.MaxRoutines,
				Client: &http.Client{
					Timeout: opts.Timeout,
				},
			},
		),
		pageSize: pageSize,
	}
}

// GetEpochStakeDistribution walks the pages one after the other and stops
// at the first page that is not full.
//
//nolint:wrapcheck
func (c *Client) GetEpochStakeDistribution(ctx context.Context, epoch int) ([]blockfrost.EpochStake, error) {
	results := []blockfrost.EpochStake{}
	for page := 1; ; page++ {
		stakes, err := c.blockfrost.EpochStakeDistribution(ctx, epoch, blockfrost.APIQueryParams{
			Count: c.pageSize,
			Page:  page,
		})
		if err != nil {
			return nil, err
		}

		results = append(results, stakes...)
		if len(stakes) < c.pageSize {
			return results, nil
		}
	}
}

//nolint:wrapcheck
func (c *Client) Health(ctx context.Context) (blockfrost.Health, error) {
	return c.blockfrost.Health(ctx)
}
