package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
	"github.com/saylorsolutions/peeklog/source/file"
	"github.com/saylorsolutions/peeklog/source/stdstream"
	"github.com/saylorsolutions/peeklog/source/store"
)

func main() {
	log := hclog.Default()
	if os.Getenv("PEEKLOG_DEBUG") != "" {
		log.SetLevel(hclog.Debug)
	}
	if len(os.Args) <= 1 {
		usage()
		return
	}
	args := os.Args[1:]
	switch args[0] {
	case "cat":
		if err := doCat(args[1:]...); err != nil {
			exitError("Failed to read file: %v", err)
		}
	case "follow":
		if err := doFollow(args[1:]...); err != nil {
			exitError("Failed to follow file: %v", err)
		}
	case "store":
		if err := doStore(log, args[1:]...); err != nil {
			exitError("Failed to store file: %v", err)
		}
	case "help":
		usage()
	default:
		exitError("Unrecognized command: '%s'", args[0])
	}
}

func exitError(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Printf("Error: "+format, args...)
	usage()
	os.Exit(-1)
}

func usage() {
	text := `
peeklog reads log streams with lookahead, reassembling multiline messages along the way.

  peeklog help
  peeklog cat FILE [START_PATTERN...]
  peeklog follow FILE [START_PATTERN...]
  peeklog store FILE DB_FILE TABLE

The 'help' subcommand will print this usage information.
The 'cat' subcommand reads FILE to its end and prints each entry as a JSON line.
The 'follow' subcommand watches FILE for new lines until interrupted, printing each entry as a JSON line.
The 'store' subcommand reads FILE and appends its entries to TABLE in the SQLite database at DB_FILE.

When one or more START_PATTERN regular expressions are given, lines that don't match any of them
are joined to the most recent matching line as one multiline log message.

Set PEEKLOG_DEBUG to enable debug logging.
`
	fmt.Print(text)
}

func doCat(args ...string) error {
	if len(args) < 1 {
		return errors.New("not enough arguments for cat")
	}
	iter, err := file.Source(args[0])
	if err != nil {
		return err
	}
	iter, err = joined(iter, args[1:])
	if err != nil {
		return err
	}
	return stdstream.SinkOut(context.Background(), iter)
}

func doFollow(args ...string) error {
	if len(args) < 1 {
		return errors.New("not enough arguments for follow")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	iter, err := file.CtxTailSource(ctx, args[0])
	if err != nil {
		return err
	}
	iter, err = joined(iter, args[1:])
	if err != nil {
		return err
	}
	return stdstream.SinkOut(ctx, iterator.Cancellable(ctx, iter))
}

func doStore(log hclog.Logger, args ...string) error {
	if len(args) < 3 {
		return errors.New("not enough arguments for store")
	}
	iter, err := file.Source(args[0])
	if err != nil {
		return err
	}
	st, err := store.NewStore(log, args[1])
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()
	return st.Sink(iter, args[2])
}

func joined(iter iterator.Iterator[entries.LogEntry], patterns []string) (iterator.Iterator[entries.LogEntry], error) {
	if len(patterns) == 0 {
		return iter, nil
	}
	return entries.Join(iter, patterns...)
}
