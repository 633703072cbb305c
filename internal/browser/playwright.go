package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Playwright drives Chromium through the playwright driver. The driver
// starts on the first Open; a failed start is retried by the next call.
type Playwright struct {
	mu       sync.Mutex
	pw       *playwright.Playwright
	runOpts  *playwright.RunOptions
	install  bool
	headless bool
	execPath string
}

// NewPlaywright prepares the engine without starting the driver. Driver
// output is discarded so it never reaches the stdio transport.
func NewPlaywright(opts Options) *Playwright {
	return &Playwright{
		runOpts: &playwright.RunOptions{
			DriverDirectory: strings.TrimSpace(opts.DriverDir),
			Browsers:        []string{"chromium"},
			Verbose:         false,
			Stdout:          io.Discard,
			Stderr:          io.Discard,
		},
		install:  opts.Install,
		headless: opts.Headless,
		execPath: strings.TrimSpace(opts.ExecPath),
	}
}

func (p *Playwright) driver() (*playwright.Playwright, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pw != nil {
		return p.pw, nil
	}
	if p.install {
		if err := playwright.Install(p.runOpts); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
		p.install = false
	}
	pw, err := playwright.Run(p.runOpts)
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	p.pw = pw
	return pw, nil
}

// Open launches a fresh Chromium instance with a single page.
func (p *Playwright) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pw, err := p.driver()
	if err != nil {
		return nil, err
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(p.headless),
	}
	if p.execPath != "" {
		launchOpts.ExecutablePath = playwright.String(p.execPath)
	}
	if timeout, ok := timeoutMillis(ctx); ok {
		launchOpts.Timeout = &timeout
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	s := &playwrightSession{ctx: ctx, browser: browser, page: page}
	// playwright calls are not context aware; closing the browser
	// unblocks any pending operation once ctx is done.
	s.stop = context.AfterFunc(ctx, func() {
		_ = browser.Close()
	})
	return s, nil
}

// Close stops the playwright driver.
func (p *Playwright) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pw == nil {
		return nil
	}
	err := p.pw.Stop()
	p.pw = nil
	if err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}

type playwrightSession struct {
	ctx     context.Context
	browser playwright.Browser
	page    playwright.Page
	stop    func() bool
}

func (s *playwrightSession) Navigate(url string) error {
	waitUntil := playwright.WaitUntilState("domcontentloaded")
	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: &waitUntil,
	}
	if timeout, ok := timeoutMillis(s.ctx); ok {
		gotoOpts.Timeout = &timeout
	}

	if _, err := s.page.Goto(url, gotoOpts); err != nil {
		return s.wrap("navigation failed", err)
	}
	return nil
}

func (s *playwrightSession) Screenshot() ([]byte, error) {
	shotOpts := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	}
	if timeout, ok := timeoutMillis(s.ctx); ok {
		shotOpts.Timeout = &timeout
	}

	data, err := s.page.Screenshot(shotOpts)
	if err != nil {
		return nil, s.wrap("screenshot failed", err)
	}
	return data, nil
}

func (s *playwrightSession) Close() error {
	if s.stop != nil && !s.stop() {
		// AfterFunc already closed the browser.
		return nil
	}
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

func (s *playwrightSession) wrap(msg string, err error) error {
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", msg, ctxErr)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func timeoutMillis(ctx context.Context) (float64, bool) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0, false
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return float64(remaining.Milliseconds()), true
}
