package component

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one lookup in GetMany.
type BatchResult struct {
	LCSCID string
	Record *Record
	Err    error
}

// GetMany looks up several parts with at most FetchWorkers lookups in
// flight. Results keep the order of ids; a failed lookup sets Err on its
// result and does not stop the others. Duplicate ids are looked up once.
func (s *Service) GetMany(ctx context.Context, ids []string) []BatchResult {
	results := make([]BatchResult, len(ids))
	first := make(map[string]int, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.FetchWorkers)

	for i, raw := range ids {
		id, err := NormalizeID(raw)
		if err != nil {
			results[i] = BatchResult{LCSCID: raw, Err: err}
			continue
		}
		results[i].LCSCID = id
		if _, seen := first[id]; seen {
			continue
		}
		first[id] = i

		g.Go(func() error {
			rec, err := s.Get(gctx, id)
			results[i].Record = rec
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if results[i].Err != nil || results[i].Record != nil {
			continue
		}
		if j, ok := first[results[i].LCSCID]; ok && j != i {
			results[i].Record = results[j].Record
			results[i].Err = results[j].Err
		}
	}
	return results
}
