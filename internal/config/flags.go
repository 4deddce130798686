package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `httop - real-time terminal dashboard for web-server access logs

Usage:
  tail -f /var/log/nginx/access.log | httop [flags]

Dashboard Flags:
`)
		printFlagCategory([]string{"tick", "limit", "sort", "recent"})

		fmt.Fprintf(os.Stderr, "\nControl Input:\n")
		printFlagCategory([]string{"control"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"metrics", "log-file", "log-format", "v"})

		fmt.Fprintf(os.Stderr, `
Interactive Commands (typed on the controlling terminal, Enter to submit):
  q        quit
  c p s i u  sort by count, path, status, IP, user agent
  + / -    grow / shrink the table by 5 rows

Examples:
  # Live traffic
  tail -f /var/log/nginx/access.log | httop

  # Replay a historical log sorted by status
  cat access.log | httop -sort status

  # Expose Prometheus metrics while watching
  tail -f access.log | httop -metrics 127.0.0.1:17092

`)
	}

	// Dashboard
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Dashboard refresh interval")
	flag.IntVar(&cfg.DisplayLimit, "limit", cfg.DisplayLimit, "Initial number of table rows")
	flag.StringVar(&cfg.SortBy, "sort", cfg.SortBy, `Initial sort key: "count", "path", "status", "ip", "user-agent"`)
	flag.IntVar(&cfg.RecentEvents, "recent", cfg.RecentEvents, "Recent events retained for table samples")

	// Control input
	flag.StringVar(&cfg.ControlPath, "control", cfg.ControlPath, "Interactive command source")

	// Observability
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Diagnostic log file (empty = discard)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")

	flag.Parse()

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	flag.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(os.Stderr, "  -%s %s\n    \t%s", f.Name, flagType(f), f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
					fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(os.Stderr)
				return
			}
		}
	})
}

// flagType returns a type hint for the flag value.
func flagType(f *flag.Flag) string {
	switch f.DefValue {
	case "true", "false":
		return ""
	}

	if strings.HasSuffix(f.DefValue, "s") || strings.HasSuffix(f.DefValue, "m") || strings.HasSuffix(f.DefValue, "h") {
		return "duration"
	}

	if _, err := fmt.Sscanf(f.DefValue, "%d", new(int)); err == nil {
		return "int"
	}

	return "string"
}
