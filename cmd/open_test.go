package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/popup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		in       OpenInput
		openErr  error
		wantURLs []string
		wantErr  string
	}{
		{name: "opens by name", in: OpenInput{Name: "Mastodon"}, wantURLs: []string{"https://joinmastodon.org"}},
		{name: "narrowed by url", in: OpenInput{Name: "Shodan", URL: "https://beta.shodan.io"}, wantURLs: []string{"https://beta.shodan.io"}},
		{name: "unknown tool", in: OpenInput{Name: "Nope"}, wantErr: `no tool named "Nope"`},
		{name: "browser failure", in: OpenInput{Name: "Bing"}, openErr: errors.New("no display"),
			wantURLs: []string{"https://bing.com"}, wantErr: "no display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupStdoutCapture(t)
			var opened []string
			opener := popup.OpenerFunc(func(url string) error {
				opened = append(opened, url)
				return tt.openErr
			})
			o := OpenCmd{ctrl: newTestController(t, favorites.NewMemoryKV(), opener)}

			err := o.Open(context.Background(), tt.in)
			assert.Equal(t, tt.wantURLs, opened)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, outBuf.String(), "Opened")
		})
	}
}
