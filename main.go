package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/editor"
	"github.com/sheikhrachel/go-lifelike/gui"
	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
	"github.com/sheikhrachel/go-lifelike/utils"
)

const defaultConfigPath = "config.json"

func main() {
	config, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	board, err := buildBoard(config)
	if err != nil {
		log.Fatalf("could not create board: %v", err)
	}
	store := model.NewPatternStore(config.PatternDir)

	mode := config.ResolvedMode()
	if config.PatternPath != "" {
		if _, err = store.Load(config.PatternPath, board); err != nil {
			log.Fatalf("could not load %s: %v", config.PatternPath, err)
		}
	} else if mode == utils.ModeAuto {
		board.ResetWithInterestingPatterns()
	} else {
		board.Randomize()
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch mode {
	case utils.ModeEditor:
		err = runEditor(ctx, config, board, store)
	case utils.ModeGUI:
		err = gui.Run(board, store, gui.Options{FrameRate: config.FrameRate})
	default:
		runAuto(ctx, config, board)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// parseConfig loads the config file named by -config, falling back to defaults, and applies flag overrides
func parseConfig(args []string) (utils.Config, error) {
	path := configPathFromArgs(args)
	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		fmt.Printf("Using default configuration (%s not found)\n", path)
		config = utils.DefaultConfig()
	}

	fs := flag.NewFlagSet("go-lifelike", flag.ContinueOnError)
	fs.String("config", path, "path to a JSON config file")
	config.Bind(fs)
	if err = fs.Parse(args); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// buildBoard creates the board described by config
func buildBoard(config utils.Config) (*model.Board, error) {
	ruleset, err := rules.Lookup(config.Rule)
	if err != nil {
		return nil, err
	}

	var opts []model.Option
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewGridPool()))
	}
	if config.UseParallel {
		opts = append(opts, model.WithWorkers(runtime.NumCPU()))
	}
	return model.NewBoard(config.Width, config.Height, ruleset, opts...), nil
}

func runEditor(ctx context.Context, config utils.Config, board *model.Board, store *model.PatternStore) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runEditor] failed to open terminal")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runEditor] failed to initialize terminal")
	}
	defer screen.Fini()

	err = editor.New(screen, board, store, config.FrameRate).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
