// Command orggraph generates, inspects and converts organization graphs
// without running the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agenthands/orggraph/internal/codec"
	"github.com/agenthands/orggraph/internal/config"
	"github.com/agenthands/orggraph/internal/core"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/ingest"
	"github.com/agenthands/orggraph/internal/core/quality"
	"github.com/agenthands/orggraph/internal/core/schema"
	"github.com/agenthands/orggraph/internal/driver"
	"github.com/agenthands/orggraph/internal/logger"
)

const usage = `usage: orggraph <command> [flags]

commands:
  generate   build a graph from a profile and write it to a file
  score      run the quality checks over a graph file
  stats      print counts, connectivity and the most central entities
  convert    rewrite a graph file in another format
  sync       mirror a graph file into Memgraph
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// errUsage means the error has already been reported along with the flag
// usage text.
var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmds := map[string]func(context.Context, []string, io.Writer, io.Writer) error{
		"generate": generateCmd,
		"score":    scoreCmd,
		"stats":    statsCmd,
		"convert":  convertCmd,
		"sync":     syncCmd,
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err := cmd(ctx, args[1:], stdout, stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			if err != errUsage && !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(stderr, "orggraph %s: %v\n", args[0], err)
			}
			return 2
		}
		fmt.Fprintf(stderr, "orggraph %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func newFlags(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}

// loadConfig reads the file named by -config, or the defaults when empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func generateCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("generate", stderr)
	cfgPath := fs.String("config", "", "TOML config whose [generation] table is the base profile")
	scale := fs.Int("scale", 0, "headcount, overrides the config")
	seed := fs.Uint64("seed", 0, "random seed, overrides the config")
	industry := fs.String("industry", "", "industry, overrides the config")
	out := fs.String("out", "orggraph.json", "output file; the extension picks the format")
	verbose := fs.Bool("v", false, "report every step")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	p := cfg.Generation
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			p.Scale = *scale
		case "seed":
			p.Seed = *seed
		case "industry":
			p.Industry = *industry
		}
	})

	eng := core.NewEngine(logger.Nop())
	if *verbose {
		eng.OnStep = func(s core.Step) {
			fmt.Fprintf(stderr, "%-8s %-28s %6d  %s\n", s.Stage, s.Name, s.Count, s.Elapsed)
		}
	}
	res, err := eng.Generate(ctx, p)
	if err != nil {
		return err
	}
	if err := codec.WriteFile(*out, res.Store.Export()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: %d entities, %d relationships, quality %.3f\n",
		*out, res.Store.EntityCount(), res.Store.RelationshipCount(), res.Quality.Overall)
	return nil
}

// readStore loads a graph file through ingest validation into a fresh store.
func readStore(path string, strict bool) (*graph.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("-in is required: %w", errUsage)
	}
	doc, err := codec.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := graph.New(schema.Default())
	if _, err := ingest.Commit(doc, s, ingest.Policy{StrictKeys: strict}); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func scoreCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("score", stderr)
	in := fs.String("in", "", "graph file")
	minScore := fs.Float64("min", 0, "fail when the overall score is below this")
	strict := fs.Bool("strict", false, "reject undeclared attribute keys instead of dropping them")
	if err := parse(fs, args); err != nil {
		return err
	}
	s, err := readStore(*in, *strict)
	if err != nil {
		return err
	}
	rep := quality.NewScorer().Score(s)
	if err := printJSON(stdout, rep); err != nil {
		return err
	}
	if rep.Overall < *minScore {
		return fmt.Errorf("overall score %.3f is below %.3f", rep.Overall, *minScore)
	}
	return nil
}

func statsCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("stats", stderr)
	in := fs.String("in", "", "graph file")
	top := fs.Int("top", 10, "how many central entities to list")
	if err := parse(fs, args); err != nil {
		return err
	}
	s, err := readStore(*in, false)
	if err != nil {
		return err
	}
	return printJSON(stdout, struct {
		graph.Statistics
		PageRank any `json:"pagerank"`
	}{s.Statistics(), s.PageRank(*top)})
}

func convertCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("convert", stderr)
	in := fs.String("in", "", "source graph file")
	out := fs.String("out", "", "target graph file; the extension picks the format")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fmt.Fprintln(stderr, "convert needs -in and -out")
		return errUsage
	}
	doc, err := codec.ReadFile(*in)
	if err != nil {
		return err
	}
	if err := codec.WriteFile(*out, doc); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: %d entities, %d relationships\n", *out, len(doc.Entities), len(doc.Relationships))
	return nil
}

func syncCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlags("sync", stderr)
	in := fs.String("in", "", "graph file")
	cfgPath := fs.String("config", "", "TOML config with the [memgraph] connection")
	purge := fs.Bool("purge", false, "delete previously mirrored nodes first")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	s, err := readStore(*in, false)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, log)
	if err != nil {
		return err
	}
	defer d.Close(context.Background())

	sy := driver.NewSyncer(d, log)
	sy.BatchSize = cfg.Memgraph.BatchSize
	sy.Purge = *purge
	rep, err := sy.Sync(ctx, s)
	if err != nil {
		return err
	}
	return printJSON(stdout, rep)
}
