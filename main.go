package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/camera"
	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/game"
	"github.com/pthm-cable/evac/renderer"
	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/storage"
	"github.com/pthm-cable/evac/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, flown by the autopilot")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot fly in graphical mode")
	logStats := flag.Bool("log-stats", false, "Log encounter stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (empty = use config)")
	assetsDir := flag.String("assets", "", "Directory with optional sprites")
	scoreURL := flag.String("score-url", "", "Score server websocket URL (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	runs := flag.Int("runs", 0, "Stop after N runs (0 = unlimited, headless defaults to 1)")
	maxChapters := flag.Int("max-chapters", 0, "End the campaign after N chapters (0 = all)")
	debug := flag.Bool("debug", false, "Panic on broken invariants and show frame timings")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	local, err := storage.Open(cfg.Storage.Path, cfg.Storage.Prefix)
	if err != nil {
		slog.Error("failed to open local storage", "error", err)
		os.Exit(1)
	}
	player, err := local.UserID(rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		slog.Warn("could not save player id", "error", err)
	}

	var store game.ScoreStore
	url := cfg.Scores.RemoteURL
	if *scoreURL != "" {
		url = *scoreURL
	}
	if url != "" {
		store = scores.NewRemoteStore(url, player, 5*time.Second)
	} else {
		fs, err := scores.NewFileStore(cfg.Scores.BoardPath, player, cfg.Scores.BoardSize)
		if err != nil {
			slog.Error("failed to open score board", "error", err)
			os.Exit(1)
		}
		store = fs
	}

	opts := game.Options{
		Seed:        rngSeed,
		Scores:      store,
		Local:       local,
		Player:      player,
		Autopilot:   *headless || *autopilot,
		MaxChapters: *maxChapters,
		Runs:        *runs,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		LogStats:    *logStats,
	}

	if *headless {
		if opts.Runs == 0 {
			opts.Runs = 1
		}
		runHeadless(cfg, opts)
		return
	}
	runWindow(cfg, opts, *assetsDir)
}

func runHeadless(cfg *config.Config, opts game.Options) {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("starting headless run", "seed", g.Seed(), "runs", opts.Runs, "max_chapters", opts.MaxChapters)
	for !g.Finished() {
		g.Frame(cfg.Derived.Tick)
	}
	score := g.LastScore()
	slog.Info("headless run finished",
		"level", score.Level,
		"cargo", score.Cargo,
		"deaths", score.Deaths,
		"encounters", len(g.Results()),
	)
}

func runWindow(cfg *config.Config, opts game.Options, assetsDir string) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Evac")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	gameW, gameH := float32(cfg.Screen.GameWidth), float32(cfg.Screen.GameHeight)
	cam := camera.New(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), gameW, gameH, true)
	input := &ui.Input{}
	dialogs := ui.NewDialogs()
	assets := ui.NewAssets(assetsDir)
	defer assets.Unload()
	presenter := ui.NewPresenter(cfg, cam, input, assets)
	defer presenter.Unload()
	if opts.Local != nil {
		presenter.Overlays().Load(opts.Local)
		defer presenter.Overlays().Save(opts.Local)
	}
	background := renderer.NewBackgroundRenderer(int32(gameW), int32(gameH), 120, 1, 8, 10, 18)

	opts.Input = input
	opts.Dialogs = dialogs
	opts.Presenter = presenter
	opts.Assets = assets
	opts.Help = func(topic game.HelpTopic) {
		if topic == game.HelpOverheat {
			dialogs.ShowModal("Overheating",
				"A panel is close to its heat limit. Overheated panels lose integrity and shut down until they cool to half. Drop it to a lower power level to let it cool.",
				nil)
		}
	}

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	for !rl.WindowShouldClose() && !g.Finished() {
		if rl.IsWindowResized() {
			cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		input.Poll(cam)
		presenter.HandleKeys()

		frameTime := rl.GetFrameTime()
		g.Frame(time.Duration(float64(frameTime) * float64(time.Second)))

		// Stars stream past while under way.
		switch g.Mode() {
		case game.ModeEncounter, game.ModeSpecial:
			background.Speed = 12
		default:
			background.Speed = 2
		}
		background.Update(frameTime)

		presenter.BeginFrame()
		background.Draw()
		g.Draw()
		presenter.EndFrame(dialogs, g.FrameStats())
	}
}
