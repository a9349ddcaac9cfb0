// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/perlscan"
	"gitlab.com/fisherprime/perlscan/lexer"
)

const (
	appName     = "perlscan"
	historyFile = ".perlscan_history"
	promptMain  = "perl> "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	var (
		strictFlag  = flag.Int("s", int(perlscan.StrictnessLayout), "strictness level 0-4")
		workerFlag  = flag.Int("j", 0, "concurrent analysis workers (0 selects the CPU count)")
		commandFlag = flag.String("c", "", `canonicalizer command line (default "perl -MO=Deparse")`)
		debugFlag   = flag.Bool("d", false, "enable debug logging")
		tokensFlag  = flag.Bool("t", false, "dump the token table instead of scoring")
		replFlag    = flag.Bool("i", false, "tokenize lines interactively")
	)
	flag.Usage = usage
	flag.Parse()

	log := logrus.New()
	if *debugFlag {
		log.SetLevel(logrus.DebugLevel)
	}
	perlscan.SetLogger(logrus.NewEntry(log))

	switch {
	case *replFlag:
		os.Exit(cmdRepl(*debugFlag))
	case *tokensFlag:
		os.Exit(cmdTokens(flag.Args(), *debugFlag))
	default:
		os.Exit(cmdScore(flag.Args(), *strictFlag, *workerFlag, *commandFlag, *debugFlag))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s [-s N] [-j N] [-c command] [-d] file.pl ...
        Score each file against its canonicalized rendition.
  %s -t [-d] file.pl ...
        Dump the token table for each file.
  %s -i [-d]
        Tokenize lines interactively.

Flags:
`, appName, appName, appName)
	flag.PrintDefaults()
}

// -----------------------------------------------------------------------------
// score
// -----------------------------------------------------------------------------

func cmdScore(paths []string, strictness, workers int, command string, debug bool) int {
	if len(paths) == 0 {
		usage()
		return 2
	}

	cfg := perlscan.DefaultConfig()
	cfg.Strictness = perlscan.Strictness(strictness)
	cfg.Debug = debug
	if workers > 0 {
		cfg.Workers = workers
	}
	if command != "" {
		fields := strings.Fields(command)
		cfg.Canonicalizer = perlscan.NewCommandCanonicalizer(fields[0], fields[1:]...)
	}

	reports, err := perlscan.NewAnalyzer(cfg).Files(context.Background(), paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	ret := 0
	for _, r := range reports {
		switch {
		case r.Err != nil:
			fmt.Fprintln(os.Stderr, red(r.String()))
			ret = 1
		case r.Skipped:
			fmt.Println(r.String())
			ret = 1
		default:
			fmt.Println(green(r.String()))
		}
	}

	return ret
}

// -----------------------------------------------------------------------------
// tokens
// -----------------------------------------------------------------------------

func cmdTokens(paths []string, debug bool) int {
	if len(paths) == 0 {
		usage()
		return 2
	}

	cfg := scanConfig(debug)

	ret := 0
	for _, path := range paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
			ret = 1
			continue
		}

		fmt.Printf("%s:\n", path)
		dumpTokens(cfg, string(buf))
	}

	return ret
}

func scanConfig(debug bool) *lexer.Config {
	cfg := lexer.DefaultConfig()
	cfg.Debug = debug

	if debug {
		log := logrus.New()
		log.SetLevel(logrus.DebugLevel)
		cfg.Logger = logrus.NewEntry(log)
	}

	return cfg
}

func dumpTokens(cfg *lexer.Config, source string) {
	stream, warns := lexer.New(cfg, source).Run(context.Background())

	for index := 0; index < stream.Len(); index++ {
		t := stream.At(index)
		fmt.Printf("  %4d..%-4d %s %q\n",
			t.Start, t.End, blue(fmt.Sprintf("%-20s", t.Kind)), stream.Text(t))
	}
	for _, w := range warns {
		fmt.Println("  " + red(w.String()))
	}
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(debug bool) int {
	fmt.Printf("%s interactive tokenizer\nCtrl+C cancels input, Ctrl+D exits.\n", appName)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	cfg := scanConfig(debug)

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		dumpTokens(cfg, line+"\n")
		ln.AppendHistory(line)
	}

	return 0
}
