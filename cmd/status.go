package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/config"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Component statuses, ordered from best to worst.
const (
	statusOperational = "operational"
	statusDegraded    = "degraded"
	statusOutage      = "outage"
)

var statusRank = map[string]int{statusOperational: 0, statusDegraded: 1, statusOutage: 2}

type statusComponent struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type statusGroup struct {
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	Components []statusComponent `json:"components"`
}

type statusResponse struct {
	Status string        `json:"status"`
	Groups []statusGroup `json:"groups"`
}

// StatusCmd reports whether the catalog and favorites backend are usable.
type StatusCmd struct {
	cfg        *config.Config
	source     catalog.Source
	kv         favorites.KV
	kvErr      error
	configFile string
}

// StatusInput holds input for the status report.
type StatusInput struct {
	Output string
}

// Status prints the report. It returns an error when a group is down.
func (s StatusCmd) Status(ctx context.Context, in StatusInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	resp := statusResponse{Groups: []statusGroup{
		s.catalogGroup(ctx),
		s.favoritesGroup(ctx),
		s.configGroup(),
	}}
	resp.Status = worst(resp.Groups, func(g statusGroup) string { return g.Status })

	if in.Output == "json" {
		if err := util.PrintPrettyJSON(resp); err != nil {
			return err
		}
	} else {
		printStatus(resp)
	}

	if resp.Status == statusOutage {
		return fmt.Errorf("osintex is not usable, see the report above")
	}
	return nil
}

func (s StatusCmd) catalogGroup(ctx context.Context) statusGroup {
	source := "embedded"
	if s.cfg.Catalog != "" {
		source = s.cfg.Catalog
	}
	comps := []statusComponent{{Name: "Source", Status: statusOperational, Detail: source}}

	cat, err := s.source.Load(ctx)
	if err != nil {
		comps = append(comps, statusComponent{Name: "Load", Status: statusOutage, Detail: err.Error()})
	} else {
		comps = append(comps,
			statusComponent{Name: "Load", Status: statusOperational, Detail: fmt.Sprintf("%s in %s",
				util.Plural(cat.TotalItems(), "tool", "tools"),
				util.Plural(len(cat.Categories), "category", "categories"))},
			statusComponent{Name: "Version", Status: statusOperational, Detail: util.OrDash(cat.Version)},
		)
	}
	return newGroup("Catalog", comps)
}

func (s StatusCmd) favoritesGroup(ctx context.Context) statusGroup {
	backend := s.cfg.FavoritesBackend
	if s.cfg.FavoritesPath != "" && (backend == config.BackendFile || backend == config.BackendSQLite) {
		backend += " (" + s.cfg.FavoritesPath + ")"
	}
	comps := []statusComponent{{Name: "Backend", Status: statusOperational, Detail: backend}}

	if s.kv == nil {
		detail := "backend unavailable"
		if s.kvErr != nil {
			detail = s.kvErr.Error()
		}
		comps = append(comps, statusComponent{Name: "Open", Status: statusOutage, Detail: detail})
		return newGroup("Favorites", comps)
	}

	raw, ok, err := s.kv.Get(ctx, s.cfg.FavoritesKey)
	switch {
	case err != nil:
		// Favorites still work for the session, they just are not saved
		comps = append(comps, statusComponent{Name: "Read", Status: statusDegraded, Detail: err.Error()})
	case !ok:
		comps = append(comps, statusComponent{Name: "Read", Status: statusOperational, Detail: "no favorites saved yet"})
	default:
		var ids []catalog.ItemID
		if err := json.Unmarshal(raw, &ids); err != nil {
			comps = append(comps, statusComponent{Name: "Read", Status: statusDegraded, Detail: "stored value is not a list: " + err.Error()})
		} else {
			comps = append(comps, statusComponent{Name: "Read", Status: statusOperational, Detail: util.Plural(len(ids), "favorite", "favorites")})
		}
	}
	return newGroup("Favorites", comps)
}

func (s StatusCmd) configGroup() statusGroup {
	detail := "not found, using defaults"
	if _, err := os.Stat(s.configFile); err == nil {
		detail = s.configFile
	}
	return newGroup("Config", []statusComponent{
		{Name: "File", Status: statusOperational, Detail: detail},
		{Name: "Log level", Status: statusOperational, Detail: s.cfg.LogLevel},
	})
}

func newGroup(name string, comps []statusComponent) statusGroup {
	return statusGroup{
		Name:       name,
		Status:     worst(comps, func(c statusComponent) string { return c.Status }),
		Components: comps,
	}
}

func worst[T any](items []T, status func(T) string) string {
	out := statusOperational
	for _, item := range items {
		if s := status(item); statusRank[s] > statusRank[out] {
			out = s
		}
	}
	return out
}

var statusDisplay = map[string]struct {
	label string
	rgb   pterm.RGB
}{
	statusOperational: {label: "Operational", rgb: pterm.NewRGB(31, 163, 130)},
	statusDegraded:    {label: "Degraded", rgb: pterm.NewRGB(245, 158, 11)},
	statusOutage:      {label: "Unavailable", rgb: pterm.NewRGB(239, 68, 68)},
}

func getStatusDisplay(status string) (string, pterm.RGB) {
	if d, ok := statusDisplay[status]; ok {
		return d.label, d.rgb
	}
	return "Unknown", pterm.NewRGB(128, 128, 128)
}

func coloredDot(rgb pterm.RGB) string {
	return rgb.Sprint("●")
}

func printStatus(resp statusResponse) {
	label, rgb := getStatusDisplay(resp.Status)
	pterm.Println()
	pterm.Println("  osintex: " + rgb.Sprint(label))

	for _, group := range resp.Groups {
		pterm.Println()
		pterm.Println("  " + pterm.Bold.Sprint(group.Name))
		for _, comp := range group.Components {
			_, compColor := getStatusDisplay(comp.Status)
			pterm.Printf("    %s %-10s %s\n", coloredDot(compColor), comp.Name, comp.Detail)
		}
	}
	pterm.Println()
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the catalog and favorites backend are usable",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "output format: json")
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	a := getApp(cmd)

	kv, closeKV, kvErr := a.cfg.OpenFavoritesKV(cmd.Context())
	defer closeKV()

	configFile := cfgFile
	if configFile == "" {
		configFile = config.DefaultConfigFile()
	}

	s := StatusCmd{
		cfg:        a.cfg,
		source:     catalog.NewSource(a.cfg.Catalog),
		kv:         kv,
		kvErr:      kvErr,
		configFile: configFile,
	}
	return s.Status(cmd.Context(), StatusInput{Output: output})
}
