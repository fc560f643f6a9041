package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/orggraph/internal/logger"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	log    *logger.Logger
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string, log *logger.Logger) (*MemgraphDriver, error) {
	if log == nil {
		log = logger.Nop()
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("memgraph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("memgraph connectivity %s: %w", uri, err)
	}

	log.Info("connected to memgraph", "uri", uri)
	return &MemgraphDriver{Driver: driver, log: log}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BuildIndices creates the label-property indexes the sync queries match
// on. Memgraph rejects re-creating an existing index, so failures are
// logged and skipped.
func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	for _, q := range IndexQueries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.log.Warn("index not created", "query", q, "error", err)
		}
	}
	return nil
}
