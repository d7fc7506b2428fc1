package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/data"
	"github.com/gridhaven/server/internal/handler"
	gonet "github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/persist"
	"github.com/gridhaven/server/internal/scripting"
	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/utility"
	"github.com/gridhaven/server/internal/world"
	"github.com/gridhaven/server/internal/zone"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           GridHaven  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      city simulation server               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("GRIDHAVEN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Connect to PostgreSQL and run migrations. An empty DSN runs the
	// simulation without persistence (useful for local experiments).
	var db *persist.DB
	var accountRepo *persist.AccountRepo
	var treasuryRepo *persist.TreasuryRepo
	var buildingRepo *persist.BuildingRepo
	var walRepo *persist.WALRepo

	printSection("database")
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err = persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		accountRepo = persist.NewAccountRepo(db)
		treasuryRepo = persist.NewTreasuryRepo(db)
		buildingRepo = persist.NewBuildingRepo(db)
		walRepo = persist.NewWALRepo(db)
	} else {
		log.Warn("no database DSN configured, running without persistence")
		printOK("persistence disabled")
	}
	fmt.Println()

	// 4. Load data tables and scripts
	printSection("data")

	templates, err := data.LoadTemplateTable("data/yaml/building_list.yaml")
	if err != nil {
		return fmt.Errorf("load building templates: %w", err)
	}
	printStat("building templates", templates.Count())

	luaEngine, err := scripting.NewEngine("scripts", log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 5. Build world state
	printSection("world")

	zones := zone.NewGrid(cfg.Simulation.GridWidth, cfg.Simulation.GridHeight)
	roads := utility.NewRoadGrid(cfg.Simulation.GridWidth, cfg.Simulation.GridHeight)
	coverage := utility.NewCoverage()

	treasury := world.NewTreasury(cfg.Economy.StartingCredits)
	state := world.NewState(cfg.Simulation.GridWidth, cfg.Simulation.GridHeight, zones)
	clock := world.NewClock()
	bus := event.NewBus()

	providers := system.Providers{
		Credits:   treasury,
		Energy:    coverage,
		Fluid:     coverage,
		Transport: roads,
		Terrain:   roads,
	}

	// 5a. Restore persisted state
	if db != nil {
		balances, err := treasuryRepo.LoadAll(context.Background())
		if err != nil {
			return fmt.Errorf("load treasury: %w", err)
		}
		for owner, credits := range balances {
			treasury.SetBalance(world.OwnerID(owner), credits)
		}
		printStat("treasury balances", len(balances))

		tick, err := system.RestoreSnapshot(state, buildingRepo, log)
		if err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		clock.Set(tick)
		printStat("buildings restored", state.Count())
	}
	fmt.Println()

	// 6. Systems
	sessions := gonet.NewSessionStore()
	var feed *gonet.Feed
	if cfg.Network.FeedAddress != "" {
		feed = gonet.NewFeed(log)
		go func() {
			if err := feed.Serve(cfg.Network.FeedAddress); err != nil {
				log.Error("observer feed stopped", zap.Error(err))
			}
		}()
	}

	demolitionSys := system.NewDemolitionSystem(
		state, clock, bus, treasury, luaEngine,
		cfg.Simulation, cfg.Economy, log)
	debrisSys := system.NewDebrisSystem(
		state, clock, bus, treasury, cfg.Economy, log)
	persistSys := system.NewPersistSystem(
		state, clock, treasury, buildingRepo, treasuryRepo, walRepo,
		cfg.Simulation, log)

	// 7. Packet handler registry
	pktReg := packet.NewRegistry(log)
	handler.RegisterAll(pktReg, &handler.Deps{
		AccountRepo: accountRepo,
		Config:      cfg,
		Log:         log,
		State:       state,
		Treasury:    treasury,
		Demolition:  demolitionSys,
		Debris:      debrisSys,
	})

	// 8. Network server
	netServer, err := gonet.NewServer(
		cfg.Network.BindAddress,
		cfg.Network.InQueueSize,
		cfg.Network.OutQueueSize,
		cfg.Network.PacketsPerSecond,
		log,
	)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	// 9. Register systems with the runner, in phase order
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(netServer, pktReg, sessions, cfg.Network.MaxPacketsPerTick, log))
	runner.Register(system.NewSpawningSystem(state, clock, bus, templates, providers, cfg.Simulation, log))
	runner.Register(system.NewConstructionSystem(state, clock, bus))
	runner.Register(system.NewLifecycleSystem(state, clock, bus, providers, cfg.Simulation, log))
	runner.Register(system.NewProgressionSystem(state, clock, bus, luaEngine, cfg.Simulation, log))
	runner.Register(demolitionSys)
	runner.Register(debrisSys)
	runner.Register(system.NewOutputSystem(bus, sessions, feed))
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(state))

	// 10. Simulation loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("server ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("simulation loop started (tick: %s, from tick %d)", cfg.Network.TickRate, clock.Now()))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
			clock.Advance()
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			persistSys.Flush(context.Background())
			netServer.Shutdown()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
