// Package cli implements the alloyctl command tree.  Every subcommand talks
// to a running apiserver through the Go SDK.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/AlloyFrontier/pkg/client"
)

// Build-time variables, injected by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions carries the persistent flag values.
type rootOptions struct {
	ServerAddr   string
	AccessKey    string
	OutputFormat string
	Timeout      time.Duration
}

func (o *rootOptions) newClient() (*client.Client, error) {
	return client.NewClient(o.ServerAddr, o.AccessKey, client.WithTimeout(o.Timeout))
}

// printJSON renders v as indented JSON when --output json is set and
// reports whether it did.
func (o *rootOptions) printJSON(w io.Writer, v interface{}) (bool, error) {
	if o.OutputFormat != "json" {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

// NewRootCommand builds the alloyctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "alloyctl",
		Short:   "AlloyFrontier CLI — explore alloy formulation trade-offs from the terminal",
		Long:    "alloyctl drives an AlloyFrontier exploration session: edit constraints,\nrun the optimizer, inspect the ranked candidate set and its insights, and\nexport batch reports.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ServerAddr, "server", "http://localhost:8080", "API server address")
	pf.StringVar(&opts.AccessKey, "access-key", "", "dashboard access key (when the gate is enabled)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.DurationVar(&opts.Timeout, "timeout", client.DefaultTimeout, "per-request timeout")

	cmd.AddCommand(
		newConstraintsCmd(opts),
		newOptimizeCmd(opts),
		newSolutionsCmd(opts),
		newInsightCmd(opts),
		newExportCmd(opts),
		newHistoryCmd(opts),
		newElementsCmd(opts),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
