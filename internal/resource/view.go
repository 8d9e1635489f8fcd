package resource

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
)

// ticket identifies one request of a view: its load sequence number and the
// mount generation it was issued under.
type ticket struct {
	seq        uint64
	generation uint64
	ctx        context.Context
}

// view tracks sequence numbers and mount generations. Callers hold the
// owning controller's lock.
type view struct {
	seq        uint64
	generation uint64
	mounted    bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// next starts a load; only the newest load may apply its response.
func (v *view) next() ticket {
	v.seq++
	return ticket{seq: v.seq, generation: v.generation, ctx: v.ctx}
}

// peek captures the generation without taking a sequence number.
func (v *view) peek() ticket {
	return ticket{seq: v.seq, generation: v.generation, ctx: v.ctx}
}

func (v *view) sameMount(t ticket) bool {
	return t.generation == v.generation
}

func (v *view) check(t ticket) error {
	if t.generation != v.generation {
		return fmt.Errorf("%w: view unmounted", domainErrors.ErrSuperseded)
	}
	if t.seq != v.seq {
		return domainErrors.ErrSuperseded
	}
	return nil
}

func (v *view) mount() {
	if v.cancel != nil {
		v.cancel()
	}
	v.generation++
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.mounted = true
}

func (v *view) unmount() {
	if v.cancel != nil {
		v.cancel()
	}
	v.generation++
	v.ctx, v.cancel = nil, nil
	v.mounted = false
}

// bind derives a request context that is also cancelled when the view the
// ticket belongs to is unmounted.
func bind(ctx context.Context, t ticket) (context.Context, context.CancelFunc) {
	reqCtx, cancel := context.WithCancel(ctx)
	if t.ctx == nil {
		return reqCtx, cancel
	}
	stop := context.AfterFunc(t.ctx, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}
}
