package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(action cli.ActionFunc, flags ...cli.Flag) *cli.App {
	return &cli.App{
		Name: "docingest",
		Commands: []*cli.Command{
			{
				Name:   "cmd",
				Action: action,
				Flags:  flags,
			},
		},
	}
}

func TestCountCommand(t *testing.T) {
	app := newTestApp(countCommand)

	t.Run("requires at least one file", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one input file")
	})

	t.Run("counts lines in a text file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\nc"), 0o644))

		err := app.Run([]string{"docingest", "cmd", path})
		require.NoError(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd", "/nonexistent/file.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})
}

func TestChunkCommand(t *testing.T) {
	flags := []cli.Flag{
		&cli.IntFlag{Name: "chunk-size", Value: 1000},
		&cli.IntFlag{Name: "chunk-overlap", Value: 300},
	}
	app := newTestApp(chunkCommand, flags...)

	t.Run("requires exactly one file", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input file")
	})

	t.Run("chunks a text file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("some text to split"), 0o644))

		err := app.Run([]string{"docingest", "cmd", "--chunk-size", "8", "--chunk-overlap", "2", path})
		require.NoError(t, err)
	})
}

func TestIngestCommandValidation(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "out", Value: "extracted"},
		&cli.StringFlag{Name: "di-endpoint"},
		&cli.StringFlag{Name: "di-key"},
		&cli.BoolFlag{Name: "embed"},
		&cli.StringFlag{Name: "api-key"},
		&cli.StringFlag{Name: "endpoint"},
		&cli.StringFlag{Name: "api-version"},
		&cli.StringFlag{Name: "embedding-deployment", Value: "text-embedding-ada-002"},
		&cli.IntFlag{Name: "chunk-size", Value: 1000},
		&cli.IntFlag{Name: "chunk-overlap", Value: 300},
		&cli.IntFlag{Name: "pool-size"},
	}
	app := newTestApp(ingestCommand, flags...)

	t.Run("requires input files", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one input file")
	})

	t.Run("missing analysis credentials fail", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		err := app.Run([]string{"docingest", "cmd", path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid document analysis configuration")
	})

	t.Run("embed without AI credentials fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		err := app.Run([]string{
			"docingest", "cmd",
			"--di-endpoint", "https://di.example.com",
			"--di-key", "secret",
			"--embed",
			path,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid AI configuration")
	})
}

func TestCondenseCommandValidation(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "history-file"},
		&cli.StringFlag{Name: "api-key"},
		&cli.StringFlag{Name: "endpoint"},
		&cli.StringFlag{Name: "api-version"},
		&cli.StringFlag{Name: "chat-deployment"},
	}
	app := newTestApp(condenseCommand, flags...)

	t.Run("requires a question", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question")
	})

	t.Run("missing credentials fail", func(t *testing.T) {
		err := app.Run([]string{"docingest", "cmd", "what about the budget?"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid AI configuration")
	})

	t.Run("missing history file fails", func(t *testing.T) {
		err := app.Run([]string{
			"docingest", "cmd",
			"--history-file", "/nonexistent/history.txt",
			"--api-key", "k",
			"--endpoint", "https://ai.example.com",
			"--api-version", "2023-05-15",
			"what about the budget?",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read history")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
