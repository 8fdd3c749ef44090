package term

import (
	"context"

	"github.com/BengineerZ/orrery"
	"golang.org/x/sync/errgroup"
)

// Run pumps terminal events into d until ctx is done or the user quits, then
// unmounts d and restores the terminal.
func Run(ctx context.Context, s *Screen, d *orrery.Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	pump := NewPump(d)
	g.Go(func() error {
		for {
			ev := s.scr.PollEvent()
			if ev == nil {
				return nil // Screen finalized.
			}
			if pump.Translate(ev) {
				cancel()
				return nil
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		d.Unmount()
		// The driver only owns s once setup succeeded.
		s.Release()
		return nil
	})
	return g.Wait()
}
