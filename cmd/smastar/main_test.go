package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/sma-maze/infrastruture/token"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayout(t *testing.T, layout string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o644))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage")

	code, _, stderr = runCLI("fly")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "fly"`)
}

func TestSolveCommand(t *testing.T) {
	t.Run("prints the path and the maze", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", writeLayout(t, "$  \n   \n  X\n"))
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "The solution is: (x=0, y=0) -> (x=1, y=1) -> (x=2, y=2)\n$  \n ∙ \n  X\n", stdout)
	})

	t.Run("bound stops the search", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", "-b", "3", writeLayout(t, "$    X"))
		assert.Equal(t, exitOK, code)
		assert.True(t, strings.HasPrefix(stdout, "Bound reached after closing 4 cells; partial path: (x=0, y=0) -> (x=0, y=1)\n"))
	})

	t.Run("greedy grows past the bound", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", "-b", "3", "-g", writeLayout(t, "$    X"))
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "The solution is: (x=0, y=0)")
		assert.Contains(t, stdout, "$∙∙∙∙X\n")
	})

	t.Run("scale growth", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", "-b", "3", "-g", "-growth", "scale", "-factor", "1.5", writeLayout(t, "$    X"))
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "The solution is:")
	})

	t.Run("zero bound is a bound", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", "-b", "0", writeLayout(t, "$    X"))
		assert.Equal(t, exitOK, code)
		assert.True(t, strings.HasPrefix(stdout, "Bound reached"))
	})

	t.Run("no solution", func(t *testing.T) {
		code, stdout, _ := runCLI("solve", writeLayout(t, "$#X"))
		assert.Equal(t, exitNoSolution, code)
		assert.Equal(t, "No solution found\n", stdout)
	})

	t.Run("verbose logs expansions", func(t *testing.T) {
		code, _, stderr := runCLI("solve", "-v", writeLayout(t, "$X"))
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stderr, "expand (x=0, y=0)")
	})

	t.Run("png output", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "maze.png")
		code, _, _ := runCLI("solve", "-png", out, "-scale", "5", writeLayout(t, "$ X"))
		require.Equal(t, exitOK, code)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()

		cfg, err := png.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 15, cfg.Width)
		assert.Equal(t, 5, cfg.Height)
	})

	t.Run("bad input", func(t *testing.T) {
		code, _, _ := runCLI("solve")
		assert.Equal(t, exitUsage, code)

		code, _, _ = runCLI("solve", filepath.Join(t.TempDir(), "missing.txt"))
		assert.Equal(t, exitUsage, code)

		code, _, stderr := runCLI("solve", writeLayout(t, "  X"))
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, "parsing layout")

		code, _, _ = runCLI("solve", "-g", "-growth", "triple", writeLayout(t, "$X"))
		assert.Equal(t, exitUsage, code)

		code, stdout, stderr := runCLI("solve", "-b", "-1", writeLayout(t, "$X"))
		assert.Equal(t, exitUsage, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, search.ErrInvalidBound.Error())
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		code, stdout, _ := runCLI("generate", "-width", "3", "-height", "2", "-seed", "9")
		require.Equal(t, exitOK, code)

		want, err := maze.Generate(maze.GenerateConfig{Width: 3, Height: 2, Goals: 1, Seed: 9})
		require.NoError(t, err)
		assert.Equal(t, want, stdout)
	})

	t.Run("file output can be solved", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "gen.txt")
		code, stdout, _ := runCLI("generate", "-width", "6", "-height", "4", "-seed", "3", "-o", out)
		require.Equal(t, exitOK, code)
		assert.Contains(t, stdout, out)

		code, stdout, _ = runCLI("solve", out)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "The solution is:")
	})

	t.Run("invalid size", func(t *testing.T) {
		code, _, _ := runCLI("generate", "-width", "0")
		assert.Equal(t, exitUsage, code)
	})
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "cli-issuer")

	code, stdout, _ := runCLI("token", "-subject", "ci-runner", "-ttl", "1h")
	require.Equal(t, exitOK, code)

	subject, err := token.NewJwtService("cli-secret", "cli-issuer").Decode(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "ci-runner", subject)

	code, _, _ = runCLI("token")
	assert.Equal(t, exitUsage, code, "subject is required")
}
