package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"MarketDash/internal/chart"
	"MarketDash/internal/collector"
	"MarketDash/internal/config"
	"MarketDash/internal/dashboard"
	"MarketDash/internal/model"
	"MarketDash/internal/notifier"
	"MarketDash/internal/recorder"
	"MarketDash/internal/scheduler"
	"MarketDash/internal/session"
	"MarketDash/internal/stream"
	"MarketDash/internal/tape"
	"MarketDash/internal/tui"
)

func main() {
	cfgFlag := flag.String("config", "", "path to config file (default $CONFIG_PATH or configs/config.yaml)")
	tickerFlag := flag.String("ticker", "", "ticker to load on start")
	rangeFlag := flag.String("range", "", "initial time range: day, month, year or ytd")
	headless := flag.Bool("headless", false, "log updates instead of drawing the dashboard")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	if *cfgFlag != "" {
		cfgPath = *cfgFlag
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *rangeFlag != "" {
		cfg.Dashboard.DefaultRange = *rangeFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	loc, _ := cfg.Location()

	setupLogging(cfg, *headless)
	log.Info("MarketDash starting...")

	// Init recorder
	sessionID := uuid.NewString()
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := openRecorder(cfg.Database.SQLitePath, sessionID)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	log.WithField("session", sessionID).Info("recorder ready")

	fetcher := collector.NewHTTPFetcher(cfg.Backend.BaseURL, cfg.Proxy, cfg.Backend.Timeout)
	log.Infof("data source: %s %s", fetcher.Name(), cfg.Backend.BaseURL)
	col := collector.NewCollector(fetcher, rec)

	board := chart.NewBoard(cfg.Dashboard.MaxPoints)
	sess := session.NewManager(cfg.Range())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		view    dashboard.View
		alerter notifier.Alerter
		bridge  *tui.Bridge
	)
	if *headless {
		view = dashboard.LogView{Board: board}
		alerter = notifier.LogAlerter{}
	} else {
		bridge = tui.NewBridge()
		view, alerter = bridge, bridge
	}

	var ctrl *dashboard.Controller
	updater := stream.NewUpdater(stream.Options{
		URL:            cfg.Backend.StreamURL,
		ReconnectDelay: cfg.Dashboard.ReconnectDelay,
		Location:       loc,
		Recorder:       rec,
		OnTick:         func(t stream.Tick) { ctrl.HandleTick(t) },
		OnState:        view.StreamStateChanged,
	})
	ctrl = dashboard.NewController(ctx, dashboard.Deps{
		Collector: col,
		Board:     board,
		Session:   sess,
		Follower:  updater,
		View:      view,
		Alerter:   alerter,
		Location:  loc,
	})

	tp := tape.New(col, rec)
	tp.OnUpdate(view.TapeReplaced)

	sched := scheduler.NewScheduler(ctx, tp, cfg.Dashboard.PollInterval)
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("register cron tasks: %v", err)
	}
	go sched.RunTapeNow()
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := updater.Run(ctx); err != nil && ctx.Err() == nil {
			log.Errorf("price stream stopped: %v", err)
		}
	}()

	if *headless {
		runHeadless(ctrl, *tickerFlag)
	} else {
		runTUI(bridge, ctrl, board, cfg.Range(), *tickerFlag)
	}

	log.Info("shutting down...")
	cancel()
	ctrl.Wait()
	log.Info("MarketDash stopped")
}

func setupLogging(cfg *config.Config, headless bool) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if headless {
		log.SetOutput(os.Stderr)
		return
	}

	// the dashboard owns the terminal
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		log.Fatalf("create log dir: %v", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	log.SetOutput(f)
}

func openRecorder(path, sessionID string) (*recorder.SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return recorder.NewSQLiteRecorder(path, sessionID)
}

func runHeadless(ctrl *dashboard.Controller, ticker string) {
	if ticker != "" {
		ctrl.Submit(ticker)
	}
	log.Info("MarketDash is running headless. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received, stopping...")
}

func runTUI(bridge *tui.Bridge, ctrl *dashboard.Controller, board *chart.Board, rng model.TimeRange, ticker string) {
	p := tea.NewProgram(tui.New(ctrl, board, rng, ticker), tea.WithAltScreen())
	bridge.Attach(p)
	defer bridge.Close()
	if ticker != "" {
		ctrl.Submit(ticker)
	}
	if _, err := p.Run(); err != nil {
		log.Errorf("dashboard: %v", err)
	}
}
