// Command moviescroll runs a search without the interactive UI and prints
// the result cards to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"moviescroll/internal/config"
	"moviescroll/internal/eventbus"
	"moviescroll/internal/omdb"
	"moviescroll/internal/search"
	"moviescroll/internal/ui/views"
)

func main() {
	var (
		configPath string
		query      string
		pages      int
		full       bool
		width      int
		logPath    string
	)
	flag.StringVarP(&configPath, "config", "c", "", "Path to the config file")
	flag.StringVarP(&query, "query", "q", "", "Search text")
	flag.IntVarP(&pages, "pages", "p", 1, "Number of result pages to load")
	flag.BoolVar(&full, "full", false, "Print every card expanded")
	flag.IntVarP(&width, "width", "w", 80, "Card width in columns")
	flag.StringVar(&logPath, "log", "", "File to write the log to (default stderr)")
	flag.Parse()

	if query == "" {
		query = strings.Join(flag.Args(), " ")
	}

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := omdb.NewClient(cfg.APIKey, omdb.WithBaseURL(cfg.BaseURL), omdb.WithTimeout(cfg.RequestTimeout()))
	fetcher := search.NewFetcher(client, cfg.RequestTimeout(), cfg.DetailConcurrency)
	ctrl := search.NewController(search.Options{MinQueryLength: cfg.MinQueryLength}, bus)

	s, err := lookup(ctx, ctrl, fetcher, query, pages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printCards(os.Stdout, ctrl, s, full, width)
}

// lookup commits query and follows the trailing card until pages are merged
// or the results run out
func lookup(ctx context.Context, ctrl *search.Controller, fetcher *search.Fetcher, query string, pages int) (search.Session, error) {
	req, ok := ctrl.Commit(ctrl.OnInputChange(query))
	if !ok {
		return search.Session{}, fmt.Errorf("search text %q is too short", query)
	}

	for {
		page, err := fetcher.Fetch(ctx, req)
		ctrl.Complete(req, page, err)
		s := ctrl.Session()

		if s.Err != "" {
			if len(s.Results) == 0 {
				return s, fmt.Errorf("%s", s.Err)
			}
			// a later page failing still leaves the merged ones to print
			log.Printf("Stopping after page %d: %s", s.PagesMerged(), s.Err)
			return s, nil
		}
		if s.PagesMerged() >= pages {
			return s, nil
		}
		if req, ok = ctrl.OnTrailingItemVisible(); !ok {
			return s, nil
		}
	}
}

func printCards(w io.Writer, ctrl *search.Controller, s search.Session, full bool, width int) {
	if full {
		for _, d := range s.Results {
			if !s.IsExpanded(d.ID) {
				ctrl.ToggleExpansion(d.ID)
			}
		}
		s = ctrl.Session()
	}

	cards := views.NewCardRenderer(views.NewStyles())
	for _, d := range s.Results {
		fmt.Fprintln(w, cards.Render(views.CardProps{
			Detail:     d,
			IsExpanded: s.IsExpanded(d.ID),
			Width:      width,
		}))
	}

	summary := fmt.Sprintf("%d results", len(s.Results))
	if s.TotalResults > 0 {
		summary = fmt.Sprintf("%d of %d results", len(s.Results), s.TotalResults)
	}
	fmt.Fprintln(w, summary)
}
