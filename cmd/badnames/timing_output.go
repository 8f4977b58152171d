package main

import (
	"fmt"
	"io"

	"badnames/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	for _, phase := range report.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "%s %.1f ms (%s)\n", phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", phase.Name, phase.DurationMS)
	}
	fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
}
