package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/viant/afs"
	"github.com/viant/annotator/finder"
	"github.com/viant/annotator/occurrence"
	"github.com/viant/annotator/plan"
	"github.com/viant/annotator/source"
	"github.com/viant/annotator/tree"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var warningColor = color.New(color.FgYellow, color.Bold)

// located is the result for one source file.
type located struct {
	File        string            `yaml:"file"`
	Positions   *finder.Positions `yaml:"positions"`
	unsatisfied []*finder.Request
}

func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate --plan plan.yaml [flags] File.java...",
		Short: "Print the insertion offsets of a plan for each Java file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLocate,
	}
	cmd.Flags().String("plan", "", "insertion plan URL (yaml)")
	cmd.Flags().Int("jobs", 0, "max files processed in parallel (0 = GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func runLocate(cmd *cobra.Command, args []string) error {
	planURL, err := cmd.Flags().GetString("plan")
	if err != nil {
		return fmt.Errorf("failed to get plan flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	verbose, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	commonlog.Configure(verbose, nil)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fs := afs.New()
	insertions, err := plan.Load(ctx, fs, planURL)
	if err != nil {
		return err
	}
	results, err := locate(ctx, fs, insertions, args, jobs)
	if err != nil {
		return err
	}

	if verbose > 0 {
		reportUnsatisfied(cmd.ErrOrStderr(), results)
	}
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err = encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}
	return encoder.Close()
}

// locate resolves the plan against every file. Files run in parallel with
// their own Finder; all of them share one occurrence registry.
func locate(ctx context.Context, fs afs.Service, insertions *plan.Plan, files []string, jobs int) ([]*located, error) {
	requests, err := insertions.Requests()
	if err != nil {
		return nil, err
	}
	registry := occurrence.NewRegistry()
	defer registry.Close()
	insertions.Register(registry)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*located, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, URL := range files {
		i, URL := i, URL
		g.Go(func() error {
			result, err := locateFile(gctx, fs, URL, copyRequests(requests), registry)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func locateFile(ctx context.Context, fs afs.Service, URL string, requests []*finder.Request, registry *occurrence.Registry) (*located, error) {
	file, err := source.Load(ctx, fs, URL)
	if err != nil {
		return nil, err
	}
	content, err := file.Content(ctx)
	if err != nil {
		return nil, err
	}
	root, err := tree.ParseRoot(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", URL, err)
	}
	locator := finder.New(file, finder.WithRegistry(registry))
	positions, err := locator.Find(ctx, root, requests)
	if err != nil {
		return nil, fmt.Errorf("failed to locate insertions in %s: %w", URL, err)
	}
	if err = file.Verify(ctx); err != nil {
		return nil, err
	}
	return &located{File: URL, Positions: positions, unsatisfied: locator.Unsatisfied()}, nil
}

// copyRequests gives each file its own request values.
func copyRequests(requests []*finder.Request) []*finder.Request {
	ret := make([]*finder.Request, len(requests))
	for i, request := range requests {
		clone := *request
		ret[i] = &clone
	}
	return ret
}

func reportUnsatisfied(w io.Writer, results []*located) {
	for _, result := range results {
		for _, request := range result.unsatisfied {
			warningColor.Fprintf(w, "%s: unable to insert %v\n", result.File, request)
		}
	}
}
