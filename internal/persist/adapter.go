// Package persist mirrors the shopping list into a durable store.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/shelf/internal/liststore"
	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/store"
)

// Key is where the serialized collection lives.
const Key = "items"

type Adapter struct {
	kv  store.KV
	log zerolog.Logger
}

func New(kv store.KV, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// Save overwrites the stored collection with items, in order.
func (a *Adapter) Save(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := a.kv.Set(ctx, Key, string(b)); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	a.log.Debug().Int("count", len(items)).Msg("items saved")
	return nil
}

// Load reads the stored collection. A missing, empty, null or malformed
// value yields an empty collection; only a failing backend is an error.
func (a *Adapter) Load(ctx context.Context) ([]model.Item, error) {
	raw, ok, err := a.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		a.log.Warn().Err(err).Msg("stored items are malformed, starting empty")
		return []model.Item{}, nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Restore merges the stored collection into s. The store emits one change
// notification when anything was restored. Returns the merged count.
func (a *Adapter) Restore(ctx context.Context, s *liststore.Store) (int, error) {
	items, err := a.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := s.Merge(items)
	a.log.Debug().Int("stored", len(items)).Int("restored", n).Msg("items restored")
	return n, nil
}

// Attach saves the full collection after every change notification.
// Subscribe other views before calling Attach so they render first.
func (a *Adapter) Attach(ctx context.Context, s *liststore.Store) (detach func()) {
	return s.Subscribe(func() {
		if err := a.Save(ctx, s.Items()); err != nil {
			a.log.Error().Err(err).Msg("persist items")
		}
	})
}
