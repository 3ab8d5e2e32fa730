package cmd

import (
	"testing"

	"github.com/osintex/cli/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveItem(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		url     string
		want    catalog.Item
		wantErr string
	}{
		{name: "unique name", tool: "Google", want: google},
		{name: "same item in two categories counts once", tool: "Shodan", url: "https://shodan.io", want: shodan},
		{name: "ambiguous without url", tool: "Shodan", wantErr: `"Shodan" matches 2 tools`},
		{name: "narrowed by url", tool: "Shodan", url: "https://beta.shodan.io", want: shodanAlt},
		{name: "unknown name", tool: "Yandex", wantErr: `no tool named "Yandex"`},
		{name: "url does not match", tool: "Google", url: "https://bing.com", wantErr: "with url https://bing.com"},
		{name: "names are exact", tool: "google", wantErr: `no tool named "google"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveItem(testCatalog(), tt.tool, tt.url)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
