package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cidrsum/internal/config"
	"cidrsum/internal/model"
	"cidrsum/internal/service"
)

const maxConcurrentReads = 8

func NewCollapseCommand() *cobra.Command {
	var maxMasklen int

	cmd := &cobra.Command{
		Use:   "collapse [file...]",
		Short: "Collapse networks read from files, or from stdin when none are given",
		Long: `Collapse reads whitespace-separated IPv4 networks and prints the smallest
equivalent set of CIDR blocks, one per line. Shorthand (10/8, 172.16/16),
dotted masks (10.0.0.0/255.0.0.0) and bare addresses are accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollapse(cmd, args, maxMasklen)
		},
	}

	cmd.Flags().IntVarP(&maxMasklen, "max-masklen", "m", 32, "shorten longer prefixes to this length before collapsing")

	return cmd
}

func runCollapse(cmd *cobra.Command, files []string, maxMasklen int) error {
	input, err := readInputs(cmd.Context(), cmd.InOrStdin(), files)
	if err != nil {
		return err
	}

	svc := service.NewAggregateService(nil, &config.Config{}, zap.NewNop())
	result, err := svc.Aggregate(cmd.Context(), model.AggregateRequest{
		Nets:       input,
		MaxMasklen: maxMasklen,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, n := range result.Networks {
		if _, err := fmt.Fprintln(out, n); err != nil {
			return err
		}
	}
	return nil
}

// readInputs returns the contents of files, read concurrently, joined by
// newlines. With no files it reads stdin.
func readInputs(ctx context.Context, stdin io.Reader, files []string) (string, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}

	contents := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			contents[i] = string(b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(contents, "\n"), nil
}
