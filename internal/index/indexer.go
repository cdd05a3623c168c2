// Package index keeps a per-volume inverted index from path segments to the
// nodes whose paths contain them, so that nodes can be found by the
// elements of their path without walking the tree.
package index

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// Indexer maintains the segment index in sync with tree mutations.
// It implements tree.Observer.
type Indexer struct {
	rdb    *redis.Client
	keys   *tree.KeyGen
	logger *log.Logger
}

var _ tree.Observer = (*Indexer)(nil)

// NewIndexer creates a new Indexer for the given volume.
func NewIndexer(rdb *redis.Client, volume string) *Indexer {
	return &Indexer{
		rdb:    rdb,
		keys:   tree.NewKeyGen(volume),
		logger: log.New(io.Discard),
	}
}

// SetVolume updates the volume for this indexer.
func (idx *Indexer) SetVolume(volume string) {
	idx.keys = tree.NewKeyGen(volume)
}

// SetLogger replaces the logger used for debug output.
func (idx *Indexer) SetLogger(logger *log.Logger) {
	if logger != nil {
		idx.logger = logger
	}
}

// OnCreate adds a new node to the index.
func (idx *Indexer) OnCreate(ctx context.Context, p treepath.Path, _ tree.Kind) error {
	return idx.Add(ctx, p)
}

// OnRemove drops a node from the index.
func (idx *Indexer) OnRemove(ctx context.Context, p treepath.Path) error {
	return idx.Delete(ctx, p)
}

// OnMove re-indexes a node under its new path.
func (idx *Indexer) OnMove(ctx context.Context, from, to treepath.Path) error {
	if err := idx.Delete(ctx, from); err != nil {
		return err
	}
	return idx.Add(ctx, to)
}

// Add indexes p under each of its segments. The root is never indexed.
func (idx *Indexer) Add(ctx context.Context, p treepath.Path) error {
	if p.IsEmpty() {
		return nil
	}
	member := tree.EncodeNode(p)
	pipe := idx.rdb.TxPipeline()
	for _, seg := range p.Segments() {
		pipe.SAdd(ctx, idx.keys.Segment(seg), member)
	}
	pipe.SAdd(ctx, idx.keys.Indexed(), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// Delete removes p from the index.
func (idx *Indexer) Delete(ctx context.Context, p treepath.Path) error {
	if p.IsEmpty() {
		return nil
	}
	member := tree.EncodeNode(p)
	pipe := idx.rdb.TxPipeline()
	for _, seg := range p.Segments() {
		pipe.SRem(ctx, idx.keys.Segment(seg), member)
	}
	pipe.SRem(ctx, idx.keys.Indexed(), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// Lookup returns the indexed nodes whose paths contain every element, in
// the given order, sorted by path. With no elements it returns every
// indexed node.
func (idx *Indexer) Lookup(ctx context.Context, elements ...string) ([]treepath.Path, error) {
	var members []string
	var err error
	if len(elements) == 0 {
		members, err = idx.rdb.SMembers(ctx, idx.keys.Indexed()).Result()
	} else {
		keys := make([]string, len(elements))
		for i, el := range elements {
			keys[i] = idx.keys.Segment(el)
		}
		members, err = idx.rdb.SInter(ctx, keys...).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	results := make([]treepath.Path, 0, len(members))
	for _, m := range members {
		p, err := tree.DecodeNode(m)
		if err != nil {
			idx.logger.Warn("skipping malformed index member", "member", m, "err", err)
			continue
		}
		if !p.ContainsAll(elements...) {
			continue
		}
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].String() < results[j].String()
	})
	return results, nil
}

// Stats describes the size of the index.
type Stats struct {
	Paths    int64
	Segments int
}

// Stats counts indexed nodes and distinct segments.
func (idx *Indexer) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	n, err := idx.rdb.SCard(ctx, idx.keys.Indexed()).Result()
	if err != nil {
		return st, fmt.Errorf("index stats: %w", err)
	}
	st.Paths = n
	err = idx.scan(ctx, func(keys []string) error {
		st.Segments += len(keys)
		return nil
	})
	return st, err
}

// Drop deletes every index key of the volume.
func (idx *Indexer) Drop(ctx context.Context) error {
	err := idx.scan(ctx, func(keys []string) error {
		return idx.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("index drop: %w", err)
	}
	return idx.rdb.Del(ctx, idx.keys.Indexed()).Err()
}

func (idx *Indexer) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := idx.rdb.Scan(ctx, cursor, idx.keys.SegmentPattern(), 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
