package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"hanobf/internal/cli"
	"hanobf/internal/config"
	"hanobf/internal/emitter"
	"hanobf/internal/interactive"
	"hanobf/internal/logger"
	"hanobf/pkg/obfuscate"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()
	log := logger.FromEnv()

	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Usage())
		return fmt.Errorf("parsing flags: %w", err)
	}
	if opts.ShowHelp {
		fmt.Println(cli.Usage())
		return nil
	}
	if opts.ListRules {
		fmt.Print(cli.RuleList())
		return nil
	}

	fileCfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg := opts.Apply(fileCfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	obfCfg := obfuscate.Config{
		Enabled:       cfg.Enabled,
		Probabilities: cfg.Probabilities,
		Normalize:     cfg.Normalize,
		Logger:        log,
	}
	rep := emitter.NewReporter(os.Stdout, emitter.Options{Plain: !cfg.Color, Quiet: opts.Quiet})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.Text != "":
		return runText(ctx, obfCfg, cfg.Seed, opts, rep)
	case opts.Interactive || stdinIsTerminal():
		obf, err := obfuscate.New(obfCfg, obfuscate.NewRand(cfg.Seed, 0), rep)
		if err != nil {
			return err
		}
		return interactive.NewSession(os.Stdin, os.Stdout, interactive.TerminalKeys(), obf, rep).Run()
	default:
		return runFilter(ctx, obfCfg, cfg.Seed, os.Stdin, os.Stdout, log)
	}
}

func runText(ctx context.Context, cfg obfuscate.Config, seed uint64, opts cli.Options, rep emitter.Output) error {
	if opts.Variants > 1 {
		results, err := obfuscate.Variants(ctx, cfg, seed, opts.Text, opts.Variants)
		if err != nil {
			return err
		}
		return rep.SendVariants(results)
	}

	obf, err := obfuscate.New(cfg, obfuscate.NewRand(seed, 0), rep)
	if err != nil {
		return err
	}
	return rep.SendText(obf.Obfuscate(opts.Text).Text)
}

// filterChunk bounds how many lines are held before their results are
// written.
var filterChunk = 256

// runFilter obfuscates stdin line by line and writes only the results, so
// the tool can sit in a pipeline. Lines are processed in chunks and a
// chunk's output is flushed before the next one is read.
func runFilter(ctx context.Context, cfg obfuscate.Config, seed uint64, in io.Reader, out io.Writer, log *slog.Logger) error {
	if seed == 0 {
		seed = rand.Uint64()
	}
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	var (
		chunk []string
		next  uint64
	)
	flush := func() error {
		results, err := obfuscate.BatchFrom(ctx, cfg, seed, next, chunk)
		if err != nil {
			return err
		}
		for i, res := range results {
			log.Debug("line obfuscated", "line", next+uint64(i)+1, "rules", res.Names())
			if _, err := writer.WriteString(res.Text); err != nil {
				return err
			}
			if err := writer.WriteByte('\n'); err != nil {
				return err
			}
		}
		next += uint64(len(chunk))
		chunk = chunk[:0]
		return writer.Flush()
	}

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			chunk = append(chunk, line)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if len(chunk) > 0 && (len(chunk) >= filterChunk || err != nil) {
			if ferr := flush(); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			return nil
		}
	}
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
