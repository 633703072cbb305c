package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// Chromedp drives a locally installed Chrome over the DevTools protocol.
type Chromedp struct {
	allocOpts []chromedp.ExecAllocatorOption
}

// NewChromedp returns an engine that spawns one Chrome process per session.
func NewChromedp(opts Options) *Chromedp {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if path := strings.TrimSpace(opts.ExecPath); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}
	return &Chromedp{allocOpts: allocOpts}
}

// Open starts Chrome and attaches to its first tab.
func (c *Chromedp) Open(ctx context.Context) (Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &chromedpSession{
		ctx:           browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

// Close is a no-op: every session owns its browser process.
func (c *Chromedp) Close() error {
	return nil
}

type chromedpSession struct {
	ctx           context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

func (s *chromedpSession) Navigate(url string) error {
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *chromedpSession) Screenshot() ([]byte, error) {
	var buf []byte
	// quality 100 selects PNG encoding.
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return buf, nil
}

func (s *chromedpSession) Close() error {
	aborted := s.ctx.Err() != nil
	err := chromedp.Cancel(s.ctx)
	s.browserCancel()
	s.allocCancel()
	if err != nil && !aborted {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
