package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/schemacov"
	"github.com/roach88/schemacov/internal/cueschema"
)

// ScanResult describes the coverage surface of one schema root: every
// distinct node with its reaching paths and declared decision logic.
type ScanResult struct {
	Schema string     `json:"schema" yaml:"schema"`
	Nodes  []NodeInfo `json:"nodes" yaml:"nodes"`
}

// NodeInfo is the coverage surface of one schema node.
type NodeInfo struct {
	Paths    []string `json:"paths,omitempty" yaml:"paths,omitempty"` // empty for the root
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rules    []string `json:"rules,omitempty" yaml:"rules,omitempty"`
	Valids   []any    `json:"valids,omitempty" yaml:"valids,omitempty"`
	Invalids []any    `json:"invalids,omitempty" yaml:"invalids,omitempty"`
	Default  bool     `json:"default,omitempty" yaml:"default,omitempty"`
	Failover bool     `json:"failover,omitempty" yaml:"failover,omitempty"`
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <schema-file>",
		Short: "List the coverage surface of a schema document",
		Long: `Scan compiles every schema in a CUE document and lists each distinct
node with its reaching paths, declared rules, and declared literal sets:
everything a test suite has to exercise for full coverage.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, args[0], cmd)
		},
	}
}

func runScan(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := opts.Logger(cmd.ErrOrStderr())

	schemas, err := loadSchemas(path)
	if err != nil {
		return commandError(formatter, err)
	}
	logger.Debug().Str("file", path).Int("schemas", len(schemas)).Msg("compiled schema document")

	results := make([]ScanResult, 0, len(schemas))
	for _, s := range schemas {
		registry := schemacov.NewRegistry(schemacov.WithTokenGenerator(&sequentialTokens{}))
		filename, line := entryLocation(path, s)
		store := registry.Register(s.Root, schemacov.Location{Filename: filename, Line: line})

		result := ScanResult{Schema: s.Name}
		for _, snapshot := range store.Snapshots() {
			result.Nodes = append(result.Nodes, nodeInfo(snapshot))
		}
		logger.Debug().Str("schema", s.Name).Int("nodes", len(result.Nodes)).Msg("scanned schema graph")
		results = append(results, result)
	}

	if handled, err := formatter.Success(results); handled {
		return err
	}
	printScanText(cmd, results)
	return nil
}

func nodeInfo(snapshot schemacov.Snapshot) NodeInfo {
	node := snapshot.Node
	info := NodeInfo{
		Rules:    node.Rules(),
		Valids:   node.Valids(),
		Invalids: node.Invalids(),
		Default:  node.HasDefault(),
		Failover: node.HasFailover(),
	}
	if s, ok := node.(*cueschema.Schema); ok {
		info.Kind = s.Kind()
	}
	for _, p := range snapshot.Paths {
		info.Paths = append(info.Paths, p.String())
	}
	return info
}

func printScanText(cmd *cobra.Command, results []ScanResult) {
	w := cmd.OutOrStdout()
	for _, result := range results {
		fmt.Fprintf(w, "schema %s: %d node(s)\n", result.Schema, len(result.Nodes))
		for _, node := range result.Nodes {
			label := "<root>"
			if len(node.Paths) > 0 {
				label = strings.Join(node.Paths, ", ")
			}
			fmt.Fprintf(w, "  %s\n", label)
			if len(node.Rules) > 0 {
				fmt.Fprintf(w, "    rules: %s\n", strings.Join(node.Rules, ", "))
			}
			if len(node.Valids) > 0 {
				fmt.Fprintf(w, "    valids: %s\n", literalText(node.Valids))
			}
			if len(node.Invalids) > 0 {
				fmt.Fprintf(w, "    invalids: %s\n", literalText(node.Invalids))
			}
			if node.Default {
				fmt.Fprintln(w, "    default: declared")
			}
			if node.Failover {
				fmt.Fprintln(w, "    failover: declared")
			}
		}
		fmt.Fprintln(w)
	}
}

func literalText(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "null"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}

// commandError renders a load failure and wraps it with the command-error
// exit code.
func commandError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message)
		return &ExitError{Code: ExitCommandError, Message: loadErr.Message, Err: err}
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error())
	return &ExitError{Code: ExitCommandError, Message: err.Error(), Err: err}
}

// sequentialTokens yields stable trace tokens so command output is
// reproducible.
type sequentialTokens struct {
	n int
}

func (g *sequentialTokens) Generate() string {
	g.n++
	return fmt.Sprintf("scan-%04d", g.n)
}
