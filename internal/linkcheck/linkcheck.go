// Package linkcheck reports which catalog links still answer.
package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/osintex/cli/internal/catalog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

// Statuses of a checked link.
const (
	StatusOK          = "ok"
	StatusRedirect    = "redirect"
	StatusBroken      = "broken"
	StatusUnreachable = "unreachable"
)

const (
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
	DefaultRetries     = 2
	userAgent          = "osintex-linkcheck/1"
)

// Result is the outcome for one item.
type Result struct {
	CategoryID string       `json:"categoryId"`
	Item       catalog.Item `json:"item"`
	Status     string       `json:"status"`
	StatusCode int          `json:"statusCode,omitempty"`
	Location   string       `json:"location,omitempty"`
	Error      string       `json:"error,omitempty"`
	Elapsed    string       `json:"elapsed"`
}

// Healthy reports whether the link answered without a client or server error.
func (r Result) Healthy() bool {
	return r.Status == StatusOK || r.Status == StatusRedirect
}

// Checker issues HEAD requests, falling back to GET when HEAD is refused.
type Checker struct {
	Client      *http.Client
	Concurrency int
	Timeout     time.Duration
	Retries     uint64
	// Backoff is the base delay between retries of transient failures.
	Backoff time.Duration
	Logger  *slog.Logger
}

// Target is an item to check along with the category it was listed under.
type Target struct {
	CategoryID string
	Item       catalog.Item
}

// Targets lists every item of cat, optionally limited to one category. Items
// listed under several categories are checked once.
func Targets(cat *catalog.Catalog, categoryID string) ([]Target, error) {
	if categoryID != "" {
		if _, ok := cat.Category(categoryID); !ok {
			return nil, fmt.Errorf("unknown category %q", categoryID)
		}
	}
	seen := make(map[string]bool)
	var out []Target
	for _, c := range cat.Categories {
		if categoryID != "" && c.ID != categoryID {
			continue
		}
		for _, item := range c.Items {
			if seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			out = append(out, Target{CategoryID: c.ID, Item: item})
		}
	}
	return out, nil
}

// Check checks every target and returns results in target order. It only
// fails when ctx is cancelled.
func (c Checker) Check(ctx context.Context, targets []Target) ([]Result, error) {
	c = c.withDefaults()
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkOne(gctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c Checker) withDefaults() Checker {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Backoff <= 0 {
		c.Backoff = 250 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Client == nil {
		c.Client = &http.Client{
			// Redirects are reported, not followed
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return c
}

var (
	errServer     = errors.New("server error")
	errInvalidURL = errors.New("invalid url")
)

func (c Checker) checkOne(ctx context.Context, t Target) Result {
	res := Result{CategoryID: t.CategoryID, Item: t.Item}
	start := time.Now()

	backoff := retry.WithMaxRetries(c.Retries, retry.NewExponential(c.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		// Only the last attempt's answer counts.
		res.StatusCode, res.Location = 0, ""
		code, location, err := c.probe(ctx, t.Item.URL)
		if errors.Is(err, errInvalidURL) {
			return err
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		res.StatusCode = code
		res.Location = location
		if code >= 500 {
			return retry.RetryableError(fmt.Errorf("%w: %d", errServer, code))
		}
		return nil
	})
	res.Elapsed = time.Since(start).Round(time.Millisecond).String()

	switch {
	case err != nil && !errors.Is(err, errServer):
		res.Status = StatusUnreachable
		res.Error = err.Error()
	case res.StatusCode >= 400:
		res.Status = StatusBroken
	case res.StatusCode >= 300:
		res.Status = StatusRedirect
	default:
		res.Status = StatusOK
	}

	c.Logger.Debug("checked link",
		slog.String("url", t.Item.URL),
		slog.String("status", res.Status),
		slog.Int("code", res.StatusCode))
	return res
}

// probe returns the status code of a HEAD request, retrying with GET when the
// server does not allow HEAD.
func (c Checker) probe(ctx context.Context, url string) (int, string, error) {
	code, location, err := c.request(ctx, http.MethodHead, url)
	if err != nil {
		return 0, "", err
	}
	if code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented {
		return c.request(ctx, http.MethodGet, url)
	}
	return code, location, nil
}

func (c Checker) request(ctx context.Context, method, url string) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", errInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	return resp.StatusCode, resp.Header.Get("Location"), nil
}
