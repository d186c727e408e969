package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"tabpal/internal/browser"
	"tabpal/internal/dwell"
	"tabpal/internal/palette"
	"tabpal/internal/store"
	"tabpal/internal/todo"
	"tabpal/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		return err
	}

	dbPath := flag.String("db", defaultDB, "path to the database file")
	eventsPath := flag.String("events", "", "browser event feed (JSONL file or FIFO, - for stdin)")
	commandsPath := flag.String("commands", "", "browser command sink (JSONL file or FIFO, - for stdout)")
	flag.Parse()

	s, err := store.New(*dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	host, closeHost, err := openHost(*eventsPath, *commandsPath)
	if err != nil {
		return err
	}
	if closeHost != nil {
		defer closeHost()
	}

	// The dwell tracker runs in its own context; it shares nothing with the
	// UI but the database.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if host != nil {
		tracker := dwell.NewTracker(dwell.SystemClock{}, host, s)
		go tracker.Run(ctx)
	}

	ctrl, err := palette.NewController(s, host, nil)
	if err != nil {
		return fmt.Errorf("loading palette: %w", err)
	}
	mgr := todo.NewManager(s, nil)
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("loading todos: %w", err)
	}

	app := tui.NewApp(s, ctrl, mgr)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// openHost wires the JSONL browser feed when one is configured. Without a
// feed the palette still serves history and todos; only open-tab search and
// dwell tracking are off.
func openHost(eventsPath, commandsPath string) (browser.Host, func(), error) {
	if eventsPath == "" {
		return nil, nil, nil
	}

	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	var in *os.File
	if eventsPath == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(eventsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening event feed: %w", err)
		}
		closers = append(closers, func() { f.Close() })
		in = f
	}

	var out *os.File
	switch commandsPath {
	case "":
		// no sink; Open becomes a no-op
	case "-":
		out = os.Stdout
	default:
		f, err := os.OpenFile(commandsPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("opening command sink: %w", err)
		}
		closers = append(closers, func() { f.Close() })
		out = f
	}

	if out == nil {
		return browser.NewStreamHost(in, nil), closeAll, nil
	}
	return browser.NewStreamHost(in, out), closeAll, nil
}
