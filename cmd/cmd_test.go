package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/popup"
	"github.com/osintex/cli/internal/testutil"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

var outBuf bytes.Buffer

// setupStdoutCapture sends pterm output to outBuf for the duration of the test.
func setupStdoutCapture(t *testing.T) {
	t.Helper()
	outBuf.Reset()
	pterm.SetDefaultOutput(&outBuf)
	pterm.DisableStyling()

	// Prefix printers keep their own writer.
	printers := []*pterm.PrefixPrinter{&pterm.Info, &pterm.Success, &pterm.Warning, &pterm.Error}
	writers := make([]io.Writer, len(printers))
	for i, p := range printers {
		writers[i] = p.Writer
		p.Writer = &outBuf
	}
	t.Cleanup(func() {
		for i, p := range printers {
			p.Writer = writers[i]
		}
		pterm.SetDefaultOutput(os.Stdout)
		pterm.EnableStyling()
	})
}

// captureStdout redirects os.Stdout and returns a function yielding what was written.
func captureStdout(t *testing.T) func() string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = oldStdout
	})
	return func() string {
		w.Close()
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		return buf.String()
	}
}

type FakeSource struct {
	LoadFunc func(ctx context.Context) (*catalog.Catalog, error)
}

func (f *FakeSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}
	return &catalog.Catalog{Categories: []catalog.Category{}}, nil
}

var (
	google    = catalog.Item{Name: "Google", URL: "https://google.com", Description: "web search"}
	bing      = catalog.Item{Name: "Bing", URL: "https://bing.com"}
	mastodon  = catalog.Item{Name: "Mastodon", URL: "https://joinmastodon.org"}
	shodan    = catalog.Item{Name: "Shodan", URL: "https://shodan.io"}
	shodanAlt = catalog.Item{Name: "Shodan", URL: "https://beta.shodan.io"}
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Categories: []catalog.Category{
		{ID: "search", Name: "Search", Description: "engines", Items: []catalog.Item{google, bing, shodan}},
		{ID: "social", Name: "Social", Items: []catalog.Item{mastodon}},
		{ID: "iot", Name: "IoT", Items: []catalog.Item{shodan, shodanAlt}},
	}}
}

func newTestController(t *testing.T, kv favorites.KV, opener popup.Opener) *popup.Controller {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	ctrl, err := popup.Initialize(context.Background(), popup.Config{
		Source: &FakeSource{LoadFunc: func(ctx context.Context) (*catalog.Catalog, error) {
			return testCatalog(), nil
		}},
		Favorites: favorites.New(kv, favorites.Options{Logger: logger}),
		Opener:    opener,
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)
	return ctrl
}
