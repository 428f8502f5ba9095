package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sheikhrachel/go-lifelike/rules"
	"github.com/sheikhrachel/go-lifelike/utils"
)

func TestConfigPathFromArgs(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{nil, defaultConfigPath},
		{[]string{"-mode", "editor"}, defaultConfigPath},
		{[]string{"-config", "a.json"}, "a.json"},
		{[]string{"--config=b.json", "-mode", "auto"}, "b.json"},
		{[]string{"-rule", "seeds", "-config=c.json"}, "c.json"},
		{[]string{"config", "d.json"}, defaultConfigPath},
	}
	for _, tc := range cases {
		if got := configPathFromArgs(tc.args); got != tc.want {
			t.Fatalf("configPathFromArgs(%v) = %q, expected %q", tc.args, got, tc.want)
		}
	}
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width": 20, "height": 10, "rule": "maze"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := parseConfig([]string{"-config", path, "-rule", "B36/S23"})
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}
	if config.Width != 20 || config.Height != 10 || config.Rule != "B36/S23" {
		t.Fatalf("unexpected config: %+v", config)
	}
}

func TestParseConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "none.json")})
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}
	if config.Width != utils.DefaultConfig().Width {
		t.Fatalf("expected defaults, got %+v", config)
	}
}

func TestBuildBoard(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 16, 8
	config.Rule = "day-and-night"
	config.Seed = 4

	board, err := buildBoard(config)
	if err != nil {
		t.Fatalf("buildBoard returned error: %v", err)
	}
	if board.Width() != 16 || board.Height() != 8 {
		t.Fatalf("size = %dx%d", board.Width(), board.Height())
	}
	if board.Ruleset() != rules.MustForRule(rules.DayAndNight) {
		t.Fatalf("ruleset = %v", board.Ruleset())
	}

	config.Rule = "B3/S9"
	if _, err = buildBoard(config); err == nil {
		t.Fatal("invalid rule should fail")
	}
}

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()
	cases := []struct {
		living, stagnant, generation int
		restart                      bool
		reason                       string
	}{
		{0, 0, 5, true, "extinction"},
		{10, config.StagnationThreshold, 5, true, "stagnation detected"},
		{10, 0, refreshInterval, true, "periodic refresh"},
		{10, 1, 7, false, ""},
		{10, 0, 0, false, ""},
	}
	for _, tc := range cases {
		restart, reason := checkRestartConditions(tc.living, tc.stagnant, tc.generation, config)
		if restart != tc.restart || reason != tc.reason {
			t.Fatalf("checkRestartConditions(%d, %d, %d) = (%v, %q), expected (%v, %q)",
				tc.living, tc.stagnant, tc.generation, restart, reason, tc.restart, tc.reason)
		}
	}
}
