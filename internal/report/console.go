// Package report renders scan progress and the final summary, as console
// tables by default or as a JSON document for machine consumption.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"stepfunction-reaper/internal/scan"
)

// Console prints a table of aged executions after every page and the full
// counter summary at the end of the scan.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// PageCompleted implements scan.Reporter.
func (c *Console) PageCompleted(r scan.PageReport) {
	if len(r.Aged) == 0 {
		fmt.Fprintf(c.w, "Page %d: checked %d execution(s), none aged\n", r.PageNumber, r.Checked)
		return
	}

	fmt.Fprintf(c.w, "Page %d: checked %d execution(s), %d aged\n", r.PageNumber, r.Checked, len(r.Aged))
	table := tablewriter.NewWriter(c.w)
	table.SetHeader([]string{"Execution ARN", "Started", "Age", "Action"})
	for _, item := range r.Aged {
		table.Append([]string{
			item.Execution.ARN,
			item.Execution.StartedAt,
			item.Age.Truncate(time.Second).String(),
			actionLabel(item),
		})
	}
	table.Render()
}

func actionLabel(item scan.AgedExecution) string {
	switch {
	case item.Stopped:
		return "stopped"
	case item.StopErr != nil:
		return "stop failed: " + item.StopErr.Error()
	default:
		return "would stop (dry run)"
	}
}

// Summary prints the final counters and, when any stop request failed, the
// list of failures. Called on completed and aborted scans alike.
func (c *Console) Summary(result scan.Result, clean bool) {
	mode := "dry run"
	if clean {
		mode = "clean"
	}
	fmt.Fprintf(c.w, "\nScan summary (%s):\n", mode)

	table := tablewriter.NewWriter(c.w)
	table.SetHeader([]string{"Pages", "Checked", "Aged", "Stopped", "Skipped", "Stop Failed"})
	table.Append([]string{
		strconv.Itoa(result.Counters.PagesProcessed),
		strconv.Itoa(result.Counters.TotalChecked),
		strconv.Itoa(result.Counters.TotalAged),
		strconv.Itoa(result.Counters.TotalStopped),
		strconv.Itoa(result.Counters.TotalSkipped),
		strconv.Itoa(result.Counters.TotalStopFailed),
	})
	table.Render()

	if len(result.StopFailures) > 0 {
		fmt.Fprintln(c.w, "\nStop failures:")
		failures := tablewriter.NewWriter(c.w)
		failures.SetHeader([]string{"Execution ARN", "Reason"})
		for _, f := range result.StopFailures {
			failures.Append([]string{f.ExecutionARN, f.Reason})
		}
		failures.Render()
	}
}
