// Package main runs the interview greeting and small-talk demo in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	configpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/config"
	"github.com/Ali-Aref1/Hireverse-Server/pkg/interview"
	"github.com/Ali-Aref1/Hireverse-Server/pkg/llm"
	loggerpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/logger"
	"github.com/Ali-Aref1/Hireverse-Server/pkg/prompt"
)

// main is the program entry point.
func main() {
	_ = godotenv.Load()

	cfg, err := parseCLIConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseCLIConfig combines defaults, environment and flags into runtime config.
func parseCLIConfig(args []string, getenv func(string) string, errOut io.Writer) (configpkg.Config, error) {
	defaults := configpkg.FromEnv(configpkg.DefaultConfig(), getenv)

	fs := flag.NewFlagSet("hireverse-greeting", flag.ContinueOnError)
	fs.SetOutput(errOut)
	rounds := fs.Int("rounds", defaults.SmallTalkRounds, "Number of small-talk exchanges after the greeting (must be positive)")
	scriptPath := fs.String("script", "", "YAML file overriding the built-in interview script")
	maxRetries := fs.Int("max_retries", defaults.MaxRetries, "Retries for failed model calls (0 disables retrying)")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose logging to stderr")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}
	if fs.NArg() > 0 {
		return configpkg.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *rounds <= 0 {
		return configpkg.Config{}, fmt.Errorf("-rounds must be positive, got %d", *rounds)
	}
	if *maxRetries < 0 {
		return configpkg.Config{}, fmt.Errorf("-max_retries must not be negative, got %d", *maxRetries)
	}

	cfg := defaults
	cfg.SmallTalkRounds = *rounds
	cfg.ScriptPath = *scriptPath
	cfg.MaxRetries = *maxRetries
	cfg.Verbose = *verbose
	return configpkg.Normalize(cfg), nil
}

// run wires the model client and driver, then runs one interview opening.
func run(ctx context.Context, cfg configpkg.Config, in io.Reader, out, errOut io.Writer) error {
	appLogger := loggerpkg.NewWriterLogger(errOut)

	script := prompt.DefaultScript()
	if cfg.ScriptPath != "" {
		loaded, err := prompt.LoadScript(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		script = loaded
	}

	client, err := llm.NewClient(cfg, llm.WithLogger(appLogger))
	if err != nil {
		return err
	}

	driver, err := interview.New(cfg, client,
		interview.WithScript(script),
		interview.WithLogger(appLogger),
	)
	if err != nil {
		return err
	}
	return driver.Run(ctx, in, out)
}
