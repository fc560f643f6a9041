package driver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/logger"
)

// DefaultBatchSize is the number of rows sent per UNWIND.
const DefaultBatchSize = 500

// Syncer mirrors a store into a Memgraph (or Neo4j) database. Writes merge
// on id, so syncing the same store twice leaves one copy of every record.
type Syncer struct {
	Driver    GraphDriver
	BatchSize int
	// Purge deletes every synced entity before writing.
	Purge bool
	Log   *logger.Logger
}

func NewSyncer(d GraphDriver, log *logger.Logger) *Syncer {
	if log == nil {
		log = logger.Nop()
	}
	return &Syncer{Driver: d, BatchSize: DefaultBatchSize, Log: log}
}

// SyncReport counts what a Sync wrote.
type SyncReport struct {
	Entities      int `json:"entities"`
	Relationships int `json:"relationships"`
	Batches       int `json:"batches"`
}

// Sync writes every entity, then every relationship, of s. The caller must
// keep s unmodified for the duration. A failed batch stops the sync; batches
// already written stay written.
func (sy *Syncer) Sync(ctx context.Context, s *graph.Store) (SyncReport, error) {
	var rep SyncReport
	if err := sy.Driver.BuildIndices(ctx); err != nil {
		return rep, fmt.Errorf("sync: indices: %w", err)
	}
	if sy.Purge {
		if _, err := sy.Driver.ExecuteQuery(ctx, PurgeQuery, nil); err != nil {
			return rep, fmt.Errorf("sync: purge: %w", err)
		}
	}

	doc := s.Export()
	rows := make([]map[string]interface{}, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		row, err := entityRow(e)
		if err != nil {
			return rep, err
		}
		rows = append(rows, row)
	}
	n, err := sy.write(ctx, "entities", MergeEntitiesQuery, rows, &rep)
	rep.Entities = n
	if err != nil {
		return rep, err
	}

	rows = make([]map[string]interface{}, 0, len(doc.Relationships))
	for _, r := range doc.Relationships {
		row, err := relationshipRow(r)
		if err != nil {
			return rep, err
		}
		rows = append(rows, row)
	}
	n, err = sy.write(ctx, "relationships", MergeRelationshipsQuery, rows, &rep)
	rep.Relationships = n
	if err != nil {
		return rep, err
	}

	sy.Log.Info("graph synced", "entities", rep.Entities, "relationships", rep.Relationships, "batches", rep.Batches)
	return rep, nil
}

func (sy *Syncer) write(ctx context.Context, what, query string, rows []map[string]interface{}, rep *SyncReport) (int, error) {
	size := sy.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	written := 0
	for start := 0; start < len(rows); start += size {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("sync %s: %w", what, err)
		}
		end := min(start+size, len(rows))
		if _, err := sy.Driver.ExecuteQuery(ctx, query, map[string]interface{}{"rows": rows[start:end]}); err != nil {
			return written, fmt.Errorf("sync %s batch %d-%d: %w", what, start, end, err)
		}
		written = end
		rep.Batches++
		sy.Log.Debug("batch written", "kind", what, "rows", end-start, "total", written)
	}
	return written, nil
}

func entityRow(e model.Entity) (map[string]interface{}, error) {
	attrs, err := encodeAttributes(e.Attributes)
	if err != nil {
		return nil, fmt.Errorf("sync: entity %s: %w", e.ID, err)
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"id":          e.ID,
		"entity_type": string(e.Type),
		"name":        e.Name,
		"description": e.Description,
		"tags":        tags,
		"attributes":  attrs,
		"created_at":  e.CreatedAt,
		"updated_at":  e.UpdatedAt,
		"version":     e.Version,
	}, nil
}

func relationshipRow(r model.Relationship) (map[string]interface{}, error) {
	props, err := encodeAttributes(r.Properties)
	if err != nil {
		return nil, fmt.Errorf("sync: relationship %s: %w", r.ID, err)
	}
	return map[string]interface{}{
		"id":                r.ID,
		"relationship_type": string(r.Type),
		"source_id":         r.SourceID,
		"target_id":         r.TargetID,
		"weight":            r.Weight,
		"confidence":        r.Confidence,
		"properties":        props,
		"created_at":        r.CreatedAt,
	}, nil
}

// encodeAttributes flattens an attribute bag to a JSON string, since nested
// maps are not valid property values in every bolt server.
func encodeAttributes(a model.Attributes) (string, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
