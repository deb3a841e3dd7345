package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"moviescroll/internal/config"
	"moviescroll/internal/eventbus"
	"moviescroll/internal/omdb"
	"moviescroll/internal/search"
	"moviescroll/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		query      string
		logPath    string
		saveConfig bool
	)
	flag.StringVarP(&configPath, "config", "c", "", "Path to the config file (default "+config.DefaultPath()+")")
	flag.StringVarP(&query, "query", "q", "", "Search to run on startup")
	flag.StringVar(&logPath, "log", "moviescroll.log", "File to write the log to")
	flag.BoolVar(&saveConfig, "save-config", false, "Write the effective configuration to the config file and exit")
	flag.Parse()

	// If no query specified, check for remaining args
	if query == "" && flag.NArg() > 0 {
		query = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if saveConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize services
	client := omdb.NewClient(cfg.APIKey, omdb.WithBaseURL(cfg.BaseURL), omdb.WithTimeout(cfg.RequestTimeout()))
	fetcher := search.NewFetcher(client, cfg.RequestTimeout(), cfg.DetailConcurrency)
	ctrl := search.NewController(search.Options{MinQueryLength: cfg.MinQueryLength}, bus)

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(ctx, cfg, ctrl, fetcher)
	uiModel.SetInitialQuery(query)

	// Create Bubble Tea program
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// subscribeLogging writes the search lifecycle to the log file
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s (api key set: %t, debounce %dms)", event.Path, event.HasAPIKey, event.DebounceMs)
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventSearchCommitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCommittedEvent); ok {
			log.Printf("Search committed: %q (generation %d)", event.Query, event.Generation)
		}
	})
	bus.Subscribe(eventbus.EventPageRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageRequestedEvent); ok {
			log.Printf("Page %d of %q requested (generation %d)", event.Page, event.Query, event.Generation)
		}
	})
	bus.Subscribe(eventbus.EventPageMerged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageMergedEvent); ok {
			log.Printf("Page %d of %q merged: %d new, %d of %d loaded", event.Page, event.Query, event.Count, event.Loaded, event.TotalResults)
		}
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchFailedEvent); ok {
			log.Printf("Fetching page %d of %q failed: %s (%v)", event.Page, event.Query, event.Message, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventNoResults, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NoResultsEvent); ok {
			log.Printf("No results for %q page %d: %s", event.Query, event.Page, event.Message)
		}
	})
	bus.Subscribe(eventbus.EventStaleResultDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.StaleResultDiscardedEvent); ok {
			log.Printf("Discarded page %d of %q from generation %d (current %d)", event.Page, event.Query, event.Generation, event.Current)
		}
	})
}
