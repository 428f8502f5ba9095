package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/utils"
)

const refreshInterval = 200

// configPathFromArgs finds the -config flag before the full flag set is bound
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultConfigPath
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, board *model.Board) {
	fmt.Printf("Rule: %s | Memory Pool: %v | Parallel: %v\n",
		board.Ruleset(), config.UseMemoryPool, config.UseParallel)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		board.Width(), board.Height(), board.CountLivingCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState updates the stats and history and returns the status label
func updateGameState(
	board *model.Board,
	generation int,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (string, bool) {
	livingCells := board.CountLivingCells()
	stats.Update(generation, livingCells, board.Width()*board.Height(), time.Since(lastFrameTime))

	isStagnant := board.UpdateHistory()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	return status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(generation int, status string, stats *utils.Stats, lastRestartGen int) {
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, stats.LivingCells, stats.Density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	if generation > lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Println()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%refreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// runAuto renders generations to the terminal until ctx is done or the generation limit is reached
func runAuto(ctx context.Context, config utils.Config, board *model.Board) {
	var (
		renderer       = &model.TerminalRenderer{}
		stats          = utils.NewStats()
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)
	displayGameInfo(config, board)

	for {
		frameStart := time.Now()
		renderer.Clear()

		status, isStagnant := updateGameState(board, generation, lastFrameTime, stats)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(generation, status, stats, lastRestartGen)
		renderer.Display(board)

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\nReached maximum generations limit (%d)\n", config.MaxGenerations)
			return
		}

		shouldRestart, restartReason := checkRestartConditions(stats.LivingCells, stagnantCount, generation, config)
		if shouldRestart && config.AutoRestart {
			fmt.Printf("Restarting due to %s...\n", restartReason)
			board.ResetWithInterestingPatterns()
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			board.InjectRandomLife(config.InjectionCount)
		}

		board.NextGeneration()
		generation++

		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n", generation, stats.Runtime().Seconds())
			fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
				stats.GenerationsPerSecond, stats.AveragePopulation)
			return
		case <-time.After(config.FrameRate):
		}
	}
}
