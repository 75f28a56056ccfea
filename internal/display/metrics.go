package display

import (
	"fmt"
	"strings"

	"fakelog/internal/metrics"
)

func FormatRunMetrics(rm *metrics.RunMetrics) string {
	if rm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s metrics:\n", rm.RunID))
	sb.WriteString(fmt.Sprintf("- Total: %d ms  (iterations=%d, lines=%d)\n", rm.DurationMs, rm.Iterations, rm.Lines))
	sb.WriteString(fmt.Sprintf("  %-9s %5d\n", "tasks", rm.Tasks))
	sb.WriteString(fmt.Sprintf("  %-9s %5d\n", "warnings", rm.Warnings))
	sb.WriteString(fmt.Sprintf("  %-9s %5d  (attempts=%d, resolved=%d, deferred=%d)\n",
		"errors", rm.Errors, rm.RetryAttempts, rm.Resolved, rm.Deferred))
	sb.WriteString(fmt.Sprintf("  %-9s %5d  (recovered=%d, failed again=%d)\n",
		"retries", rm.Retries, rm.Recovered, rm.FailedAgain))
	return sb.String()
}
