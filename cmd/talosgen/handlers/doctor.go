package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
	"github.com/imamik/talosgen/internal/platform/talos"
	"github.com/imamik/talosgen/internal/ui/progress"
	"github.com/imamik/talosgen/internal/util/naming"
)

// isInteractiveTTY can be replaced in tests.
var isInteractiveTTY = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// DoctorOptions holds the doctor command flags.
type DoctorOptions struct {
	InventoryPath string
	OutputDir     string
	Backend       string
	Talosctl      string
}

type doctorCheck struct {
	name   string
	ok     bool
	detail string
}

// Doctor checks the generator backend, the inventory and the output
// directory, and fails if a generate run could not succeed.
func Doctor(_ context.Context, opts DoctorOptions) error {
	checks := runDoctorChecks(opts)

	printHeader("talosgen doctor")
	styled := isInteractiveTTY()
	failed := 0
	for _, c := range checks {
		if !c.ok {
			failed++
		}
		printRow(styled, c)
	}
	fmt.Fprintln(stdout)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(stdout, "  Ready to generate.")
	return nil
}

func runDoctorChecks(opts DoctorOptions) []doctorCheck {
	var checks []doctorCheck

	if opts.Backend == BackendBuiltin {
		checks = append(checks, doctorCheck{name: "generator", ok: true, detail: "builtin (Talos machinery)"})
	} else {
		res := checkGeneratorTools(opts.Talosctl)
		for _, r := range res.Results {
			c := doctorCheck{name: r.Tool.Name, ok: r.Found || !r.Tool.Required}
			switch {
			case r.Found && r.Version != "":
				c.detail = fmt.Sprintf("%s (%s)", r.Path, r.Version)
			case r.Found:
				c.detail = r.Path
			default:
				c.detail = "not found, install from " + r.Tool.InstallURL
			}
			checks = append(checks, c)
		}
	}

	inv, err := loadInventory(opts.InventoryPath)
	if err != nil {
		checks = append(checks, doctorCheck{name: "inventory", detail: err.Error()})
		return checks
	}
	checks = append(checks, doctorCheck{
		name:   "inventory",
		ok:     true,
		detail: fmt.Sprintf("%s, %d nodes", inv.Cluster.Name, len(inv.Nodes())),
	})

	layout := config.NewLayout(opts.OutputDir)
	for _, path := range sharedPatches(inv, layout) {
		c := doctorCheck{name: "shared patch", detail: path}
		if _, err := os.Stat(path); err == nil {
			c.ok = true
		} else {
			c.detail = fmt.Sprintf("%s missing", path)
		}
		checks = append(checks, c)
	}

	exists, err := talos.SecretsExist(layout.SecretsPath())
	switch {
	case err != nil:
		checks = append(checks, doctorCheck{name: "secrets", detail: err.Error()})
	case exists:
		checks = append(checks, doctorCheck{name: "secrets", ok: true, detail: layout.SecretsPath() + " (reused)"})
	default:
		checks = append(checks, doctorCheck{name: "secrets", ok: true, detail: "created on first run"})
	}

	checks = append(checks, checkOutputDir(layout.OutputDir), checkLeftoverOverrides(inv, layout))
	return checks
}

// sharedPatches lists the shared patch of each node class, in class order.
func sharedPatches(inv *inventory.Inventory, layout config.Layout) []string {
	return []string{
		inv.PatchPath(inventory.ClassCore, layout.PatchDir()),
		inv.PatchPath(inventory.ClassEdge, layout.PatchDir()),
	}
}

// checkLeftoverOverrides lists temporary overrides a killed run left behind.
// They never affect a new run, so the check only informs.
func checkLeftoverOverrides(inv *inventory.Inventory, layout config.Layout) doctorCheck {
	var leftovers []string
	for _, n := range inv.Nodes() {
		matches, _ := filepath.Glob(filepath.Join(layout.TempDir(), naming.NodePatchGlob(n.Hostname)))
		leftovers = append(leftovers, matches...)
	}

	c := doctorCheck{name: "overrides", ok: true, detail: "no leftovers"}
	if len(leftovers) > 0 {
		c.detail = fmt.Sprintf("%d left by an earlier run, safe to delete: %s", len(leftovers), strings.Join(leftovers, ", "))
	}
	return c
}

func checkOutputDir(dir string) doctorCheck {
	c := doctorCheck{name: "output dir", detail: dir}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.ok = true
		c.detail = dir + " (created on first run)"
	case err != nil:
		c.detail = err.Error()
	case !info.IsDir():
		c.detail = dir + " is not a directory"
	default:
		c.ok = true
	}
	return c
}

func printHeader(title string) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  %s\n", title)
	fmt.Fprintln(stdout, "  "+strings.Repeat("═", len(title)))
	fmt.Fprintln(stdout)
}

func printRow(styled bool, c doctorCheck) {
	indicator := "[OK]"
	style := progress.OKStyle
	if !c.ok {
		indicator = "[!!]"
		style = progress.FailedStyle
	}

	detail := c.detail
	if styled {
		indicator = style.Render(indicator)
		detail = progress.DimStyle.Render(detail)
	}
	fmt.Fprintf(stdout, "  %s  %-14s %s\n", indicator, c.name, detail)
}
