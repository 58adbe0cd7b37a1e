package provider

import (
	"context"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/companydir/internal/company"
)

const fetchKey = "fetch"

// shared collapses concurrent fetches into one in-flight call.
type shared struct {
	next  Provider
	group singleflight.Group
}

// Share wraps p so that concurrent Fetch calls share a single underlying fetch.
// Each caller receives its own copy of the collection. The shared call keeps the values of the
// context that started it but not its cancellation; a caller whose context ends stops waiting
// and gets ErrUnavailable while the others keep waiting for the result.
func Share(p Provider) Provider {
	return &shared{next: p}
}

func (s *shared) Fetch(ctx context.Context) ([]company.Company, error) {
	ch := s.group.DoChan(fetchKey, func() (any, error) {
		return s.next.Fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, unavailable(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		records, _ := res.Val.([]company.Company)
		return slices.Clone(records), nil
	}
}

func (s *shared) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return s.next.Lookup(ctx, id)
}

func (s *shared) Close() error { return Close(s.next) }
