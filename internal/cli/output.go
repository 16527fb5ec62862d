package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/iudanet/possync/pkg/api"
)

const timeLayout = time.RFC3339

// useJSON: явный --format, иначе JSON когда stdout не терминал
func (c *Cli) useJSON(format string) (bool, error) {
	switch format {
	case "json":
		return true, nil
	case "table":
		return false, nil
	case "":
		return !c.io.IsTerminal(), nil
	default:
		return false, fmt.Errorf("unknown output format %q", format)
	}
}

func (c *Cli) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	c.io.Println(string(data))
	return nil
}

func (c *Cli) printStatus(format string, status api.HealthStatus, cycle *api.CycleResult, version string) error {
	asJSON, err := c.useJSON(format)
	if err != nil {
		return err
	}
	if asJSON {
		return c.printJSON(api.StatusResponse{Health: status, LastCycle: cycle, Version: version})
	}

	state := "healthy"
	if !status.Healthy {
		state = "unhealthy"
	}
	c.io.Printf("Health:    %s\n", state)
	c.io.Printf("Message:   %s\n", status.Message)
	c.io.Printf("Local:     %s\n", reachable(status.LocalReachable))
	c.io.Printf("Remote:    %s\n", reachable(status.RemoteReachable))
	if status.LastSuccessfulSync != nil {
		c.io.Printf("Last sync: %s\n", status.LastSuccessfulSync.Local().Format(timeLayout))
	} else {
		c.io.Printf("Last sync: never\n")
	}
	if version != "" {
		c.io.Printf("Version:   %s\n", version)
	}

	if cycle == nil {
		return nil
	}

	c.io.Println()
	c.io.Printf("Cycle %s started %s, took %s\n",
		cycle.CycleID, cycle.StartedAt.Local().Format(timeLayout), time.Duration(cycle.DurationMS)*time.Millisecond)

	if len(cycle.Tables) > 0 {
		tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "TABLE\tPUSHED\tPUSH FAILED\tPULLED\tPULL FAILED\tCURSOR")
		for _, t := range cycle.Tables {
			cursor := "-"
			if t.Cursor != nil {
				cursor = t.Cursor.Local().Format(timeLayout)
			}
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
				t.Table, t.Pushed, t.PushFailed, t.Pulled, t.PullFailed, cursor)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}

	errs := append([]string(nil), cycle.Errors...)
	for _, t := range cycle.Tables {
		errs = append(errs, t.Errors...)
	}
	if len(errs) > 0 {
		c.io.Println()
		c.io.Println("Errors:")
		for _, e := range errs {
			c.io.Printf("  - %s\n", e)
		}
	}
	return nil
}

func (c *Cli) printCursors(format string, cursors []api.Cursor) error {
	asJSON, err := c.useJSON(format)
	if err != nil {
		return err
	}
	if asJSON {
		return c.printJSON(api.CursorsResponse{Cursors: cursors})
	}

	if len(cursors) == 0 {
		c.io.Println("No cursors stored")
		return nil
	}

	tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TABLE\tWATERMARK")
	for _, cur := range cursors {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", cur.Table, cur.Watermark.Local().Format(timeLayout))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func reachable(ok bool) string {
	if ok {
		return "reachable"
	}
	return "unreachable"
}
