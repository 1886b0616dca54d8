// Command smastar solves maze layouts with a memory-bounded A* search,
// generates random layouts and issues API tokens.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beka-birhanu/sma-maze/config"
	logger "github.com/beka-birhanu/sma-maze/infrastruture/log"
	"github.com/beka-birhanu/sma-maze/infrastruture/token"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
)

const (
	exitOK         = 0
	exitNoSolution = 1
	exitUsage      = 2

	defaultIssuer = "sma-maze"
)

var errUsage = errors.New("usage: smastar <solve|generate|token> [flags]")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, errUsage)
		return exitUsage
	}

	switch args[0] {
	case "solve":
		return solve(args[1:], stdout, stderr)
	case "generate":
		return generate(args[1:], stdout, stderr)
	case "token":
		return issueToken(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", args[0], errUsage)
		return exitUsage
	}
}

func solve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bound := fs.Int("b", 0, "closed set bound; omit to search without one")
	greedy := fs.Bool("g", false, "grow the bound instead of stopping at it")
	growth := fs.String("growth", "double", "bound growth when -g is set: double or scale")
	factor := fs.Float64("factor", search.DefaultScaleFactor, "growth factor for -growth scale")
	verbose := fs.Bool("v", false, "log every expansion to stderr")
	pngOut := fs.String("png", "", "also draw the maze and path to this PNG file")
	scale := fs.Int("scale", maze.DefaultScale, "cell size in pixels for -png")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: smastar solve [-b N] [-g] [-growth double|scale] [-factor F] [-v] [-png FILE] FILE")
		return exitUsage
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "reading layout: %v\n", err)
		return exitUsage
	}

	m, err := maze.Parse(string(raw), nil)
	if err != nil {
		fmt.Fprintf(stderr, "parsing layout: %v\n", err)
		return exitUsage
	}

	policy := search.Stop()
	if *greedy {
		policy, err = search.ParsePolicy(*growth, *factor)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	opts := []search.Option{search.WithPolicy(policy)}
	if flagSet(fs, "b") {
		opts = append(opts, search.WithBound(*bound))
	}
	if *verbose {
		stepLogger, err := logger.New("SMASTAR", config.ColorBlue, stderr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		opts = append(opts, search.WithObserver(func(s search.Step) {
			stepLogger.Info(fmt.Sprintf("expand (x=%d, y=%d) g=%d h=%d f=%d open=%d closed=%d bound=%g",
				s.Current.Row, s.Current.Col, s.G, s.H, s.F, s.Open, s.Closed, s.Bound))
		}))
	}

	res, err := search.Search(m, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	switch res.Outcome {
	case search.NoSolution:
		fmt.Fprintln(stdout, "No solution found")
		return exitNoSolution
	case search.Partial:
		fmt.Fprintf(stdout, "Bound reached after closing %d cells; partial path: %s\n", res.Closed, search.FormatPath(res.Path))
	default:
		fmt.Fprintf(stdout, "The solution is: %s\n", search.FormatPath(res.Path))
	}
	fmt.Fprint(stdout, m.Render(res.Path))

	if *pngOut != "" {
		if err := writePNG(*pngOut, m, res.Path, *scale); err != nil {
			fmt.Fprintf(stderr, "writing image: %v\n", err)
			return exitUsage
		}
	}
	return exitOK
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func writePNG(name string, m *maze.Maze, path []maze.CellPosition, scale int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := m.DrawPNG(f, path, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func generate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", 10, "maze width in rooms")
	height := fs.Int("height", 10, "maze height in rooms")
	goals := fs.Int("goals", 1, "number of goals")
	seed := fs.Int64("seed", 0, "random seed; 0 picks one from the clock")
	out := fs.String("o", "", "write the layout to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	layout, err := maze.Generate(maze.GenerateConfig{
		Width:  *width,
		Height: *height,
		Goals:  *goals,
		Seed:   *seed,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if *out == "" {
		fmt.Fprint(stdout, layout)
		return exitOK
	}

	if err := os.WriteFile(*out, []byte(layout), 0o644); err != nil {
		fmt.Fprintf(stderr, "writing layout: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(stdout, "Wrote %dx%d maze (seed %d) to %s\n", *width, *height, *seed, *out)
	return exitOK
}

func issueToken(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	subject := fs.String("subject", "", "client name the token is issued to")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	config.LoadDotEnv()
	secret := config.GetEnvWithDefault("JWT_SECRET", "")
	if secret == "" {
		fmt.Fprintln(stderr, "JWT_SECRET is not set")
		return exitUsage
	}

	tokenizer := token.NewJwtService(secret, config.GetEnvWithDefault("JWT_ISSUER", defaultIssuer))
	signed, err := tokenizer.Generate(*subject, *ttl)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	fmt.Fprintln(stdout, signed)
	return exitOK
}
