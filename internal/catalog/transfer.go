package catalog

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Export writes every author with its books and copies to path, one JSON
// object per line, and returns the number of authors written. The graphs
// are read in a single transaction; the file is replaced atomically.
func (c *Catalog) Export(ctx context.Context, path string) (int, error) {
	graphs, err := c.loadGraphs(ctx)
	if err != nil {
		return 0, err
	}

	records := make([][]byte, 0, len(graphs))
	for _, g := range graphs {
		line, err := json.Marshal(g)
		if err != nil {
			return 0, fmt.Errorf("encode author %d: %w", g.ID, err)
		}
		records = append(records, line)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}

	c.log.Info().Str("path", path).Int("authors", len(graphs)).Msg("catalog exported")
	return len(graphs), nil
}

// Import reads author graphs from a JSONL file written by Export and creates
// them as new records. Identities in the file are ignored. Blank and
// malformed lines are skipped. All graphs are created in one transaction: a
// single duplicate ISBN or copy code rolls the whole import back.
func (c *Catalog) Import(ctx context.Context, path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}

	graphs := make([]*types.Author, 0, len(records))
	for _, rec := range records {
		var a types.Author
		if err := json.Unmarshal(rec, &a); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable record")
			continue
		}
		if err := checkGraphShape(&a); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable record")
			continue
		}
		a.ClearIDs()
		if err := prepareGraph(&a); err != nil {
			return 0, fmt.Errorf("import %s: record %d: %w", path, len(graphs)+1, err)
		}
		graphs = append(graphs, &a)
	}

	ids, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) ([]types.GraphIDs, error) {
		out := make([]types.GraphIDs, 0, len(graphs))
		for _, g := range graphs {
			gid, err := tx.InsertGraph(ctx, g)
			if err != nil {
				return nil, err
			}
			out = append(out, gid)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	for i, g := range graphs {
		g.AssignIDs(ids[i])
	}

	c.log.Info().Str("path", path).Int("authors", len(graphs)).Msg("catalog imported")
	return len(graphs), nil
}

// loadGraphs reads every author graph, ordered by author identity, in one
// transaction.
func (c *Catalog) loadGraphs(ctx context.Context) ([]*types.Author, error) {
	return store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) ([]*types.Author, error) {
		authors, err := tx.Authors().All(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*types.Author, 0, len(authors))
		for _, a := range authors {
			g, err := tx.LoadGraph(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	})
}
