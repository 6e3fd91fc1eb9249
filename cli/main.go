package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluecore/bluecore"
	"github.com/bluecore/bluecore/core/config"
	"github.com/bluecore/bluecore/core/identity"
	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/core/state"
	"github.com/bluecore/bluecore/core/storage"
	"github.com/bluecore/bluecore/pkg/logging"
)

func main() {
	// Manually parse global flags for logging, as they are needed before subcommands.
	var logLevel, logFormat string
	fs := flag.NewFlagSet("global", flag.ContinueOnError)
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	// Ignore errors, we'll just use defaults if flags are not there.
	_ = fs.Parse(os.Args)

	logging.InitLogger(logLevel, logFormat, nil)

	if len(os.Args) < 2 {
		logging.GetLogger().Error("expected 'run' or 'reset' subcommands")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runCmd := flag.NewFlagSet("run", flag.ExitOnError)
		configFile := runCmd.String("config", "adapter.yaml", "Path to the adapter YAML configuration.")
		dataDir := runCmd.String("data", "/var/lib/bluecore", "Directory for persisted adapter state.")
		quiet := runCmd.Bool("quiet", false, "Bring the adapter up to the BLE-only level and rest there.")
		// Add logging flags to help text, but they are handled globally.
		runCmd.String("log-level", "info", "Log level (debug, info, warn, error)")
		runCmd.String("log-format", "console", "Log format (console, json)")
		if err := runCmd.Parse(os.Args[2:]); err != nil {
			logging.GetLogger().Error("Failed to parse run flags", "error", err)
			os.Exit(1)
		}
		run(*configFile, *dataDir, *quiet)

	case "reset":
		resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)
		dataDir := resetCmd.String("data", "/var/lib/bluecore", "Directory for persisted adapter state.")
		resetCmd.String("log-level", "info", "Log level (debug, info, warn, error)")
		resetCmd.String("log-format", "console", "Log format (console, json)")
		if err := resetCmd.Parse(os.Args[2:]); err != nil {
			logging.GetLogger().Error("Failed to parse reset flags", "error", err)
			os.Exit(1)
		}
		runReset(*dataDir)

	default:
		logging.GetLogger().Error("expected 'run' or 'reset' subcommands", "command", os.Args[1])
		os.Exit(1)
	}
}

func run(configFile, dataDir string, quiet bool) {
	logger := logging.GetLogger()
	logger.Info("Starting adapter", "config", configFile, "data", dataDir)

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		logger.Error("Failed to open data directory", "error", err)
		os.Exit(1)
	}

	// TODO: bind to the platform HCI stack; simRadio only exercises the
	// state machine end to end.
	adapter, err := bluecore.NewAdapter(cfg, &simRadio{delay: 50 * time.Millisecond}, store, logger)
	if err != nil {
		logger.Error("Failed to create adapter", "error", err)
		os.Exit(1)
	}

	for _, p := range cfg.Profiles {
		name := p.Name
		err := adapter.RegisterProfile(name, func(l logging.Logger) profile.Module {
			return &stubModule{name: name, logger: l}
		})
		if err != nil {
			logger.Error("Failed to register profile module", "profile", name, "error", err)
			os.Exit(1)
		}
	}

	adapter.Subscribe(observerFunc(func(prev, next state.State) {
		logger.Info("State change", "prev", prev.String(), "next", next.String())
	}))

	adapter.Start()
	if err := adapter.Enable(quiet); err != nil {
		logger.Error("Enable rejected", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")

	if err := adapter.Disable(); err != nil {
		logger.Error("Disable rejected", "error", err)
	} else {
		waitForOff(adapter, 10*time.Second)
	}

	if err := adapter.Close(); err != nil {
		logger.Error("Shutdown flush failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Adapter stopped")
}

func runReset(dataDir string) {
	logger := logging.GetLogger()
	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		logger.Error("Failed to open data directory", "error", err)
		os.Exit(1)
	}

	salts := identity.NewSaltStore(store, logger)
	if err := salts.Load(); err != nil {
		logger.Error("Failed to load salt", "error", err)
		os.Exit(1)
	}
	if _, err := salts.Regenerate(); err != nil {
		logger.Error("Failed to regenerate salt", "error", err)
		os.Exit(1)
	}
	// Offline reset: no running process will flush later, commit now.
	if err := salts.Flush(); err != nil {
		logger.Error("Failed to commit new salt", "error", err)
		os.Exit(1)
	}
	if err := store.WriteConfig(&config.Overrides{}); err != nil {
		logger.Error("Failed to clear overrides", "error", err)
		os.Exit(1)
	}
	logger.Info("Factory reset complete", "data", dataDir)
}

func waitForOff(adapter interface{ State() state.State }, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if adapter.State() == state.Off {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	logging.GetLogger().Warn("Adapter did not reach off before timeout")
}

// observerFunc adapts a function to the state.Observer interface.
type observerFunc func(prev, next state.State)

func (f observerFunc) OnAdapterStateChange(prev, next state.State) { f(prev, next) }

// simRadio stands in for the native radio stack and reports readiness
// after a fixed delay.
type simRadio struct {
	delay time.Duration
}

func (r *simRadio) BringUp(done func(err error)) {
	time.AfterFunc(r.delay, func() { done(nil) })
}

func (r *simRadio) BringDown(done func()) {
	time.AfterFunc(r.delay, func() { done() })
}

// stubModule is a placeholder profile service that starts and stops
// instantly. Real capability bindings replace it per profile name.
type stubModule struct {
	name   string
	logger logging.Logger
}

func (m *stubModule) Name() string { return m.name }

func (m *stubModule) Start(done func(err error)) {
	m.logger.Info("Profile service started")
	go done(nil)
}

func (m *stubModule) Stop(done func(err error)) {
	m.logger.Info("Profile service stopped")
	go done(nil)
}
