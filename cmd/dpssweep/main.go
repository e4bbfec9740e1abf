// dpssweep runs one calculation or range sweep against the embedded game
// data and prints the JSON response.
//
// Usage:
//
//	go run ./cmd/dpssweep -op char_103_angel -skill skchr_angel_3 -level 5 -enemy enemy_1007_slime
//	go run ./cmd/dpssweep -op char_134_ifrit -sweep -def 0:2000:100 -res 0:100:5 -enemy-def 0 -enemy-res 20
//	go run ./cmd/dpssweep -op char_222_bpipe -profile bagpipe.yaml -sweep
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arkdps/internal/calculator"
	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/game/enemy"
	"github.com/udisondev/arkdps/internal/game/operator"
	"github.com/udisondev/arkdps/internal/model"
)

type options struct {
	dataDir    string
	operatorID string
	skillID    string
	levelIndex int
	profile    string
	cfg        model.OperatorConfig

	enemyID  string
	enemyDef float64
	enemyRes float64

	sweep   bool
	def     string
	res     string
	workers int
}

func main() {
	var o options
	flag.StringVar(&o.dataDir, "data", "", "game data directory (default: embedded)")
	flag.StringVar(&o.operatorID, "op", "", "operator id (required)")
	flag.StringVar(&o.skillID, "skill", model.BasicAttackSkillID, "skill id")
	flag.IntVar(&o.levelIndex, "level", 0, "skill level index")
	flag.StringVar(&o.profile, "profile", "", "YAML operator config; flags below override it")
	flag.IntVar(&o.cfg.Phase, "phase", 2, "promotion phase")
	flag.IntVar(&o.cfg.Level, "lvl", 0, "operator level (0 = max)")
	flag.IntVar(&o.cfg.Trust, "trust", 100, "trust")
	flag.IntVar(&o.cfg.Potential, "pot", 0, "potential rank index")
	flag.StringVar(&o.cfg.ModuleID, "module", "", "module id")
	flag.IntVar(&o.cfg.Targets, "targets", 1, "target count")
	flag.StringVar(&o.enemyID, "enemy", "", "enemy id; empty uses -enemy-def/-enemy-res")
	flag.Float64Var(&o.enemyDef, "enemy-def", 0, "custom enemy defense")
	flag.Float64Var(&o.enemyRes, "enemy-res", 0, "custom enemy resistance")
	flag.BoolVar(&o.sweep, "sweep", false, "run a range sweep instead of a single calculation")
	flag.StringVar(&o.def, "def", "", "defense range min:max:step")
	flag.StringVar(&o.res, "res", "", "resistance range min:max:step")
	flag.IntVar(&o.workers, "workers", 0, "sweep workers (0 = GOMAXPROCS)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, o, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer) error {
	if o.operatorID == "" {
		return fmt.Errorf("-op is required")
	}
	if o.profile != "" {
		cfg, err := loadProfile(o.profile)
		if err != nil {
			return err
		}
		o.cfg = overlayFlags(cfg, o.cfg)
	}

	store, err := data.LoadDir(o.dataDir)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}
	operators := operator.NewRegistry(store)
	if err := operator.RegisterAll(operators); err != nil {
		return err
	}
	enemies := enemy.NewCatalog(store)
	if err := enemy.RegisterAll(enemies); err != nil {
		return err
	}
	svc := calculator.New(operators, enemies, calculator.Options{Workers: o.workers})

	sel := calculator.EnemySelector{EnemyID: o.enemyID}
	if o.enemyID == "" {
		custom := model.NewStats("Custom", o.enemyDef, o.enemyRes)
		sel.Enemy = &custom
	}

	var resp any
	if o.sweep {
		def, err := parseRange(o.def)
		if err != nil {
			return fmt.Errorf("-def: %w", err)
		}
		res, err := parseRange(o.res)
		if err != nil {
			return fmt.Errorf("-res: %w", err)
		}
		resp, err = svc.Sweep(ctx, calculator.SweepRequest{
			OperatorID:    o.operatorID,
			Config:        o.cfg,
			SkillID:       o.skillID,
			LevelIndex:    o.levelIndex,
			EnemySelector: sel,
			Def:           def,
			Res:           res,
		})
		if err != nil {
			return err
		}
	} else {
		resp, err = svc.Calculate(ctx, calculator.CalculateRequest{
			OperatorID:    o.operatorID,
			Config:        o.cfg,
			SkillID:       o.skillID,
			LevelIndex:    o.levelIndex,
			EnemySelector: sel,
		})
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// loadProfile reads an operator config from YAML.
func loadProfile(path string) (model.OperatorConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.OperatorConfig{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var cfg model.OperatorConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return model.OperatorConfig{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return cfg, nil
}

// overlayFlags applies progression flags that were set explicitly on the
// command line over the profile.
func overlayFlags(profile, flags model.OperatorConfig) model.OperatorConfig {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "phase":
			profile.Phase = flags.Phase
		case "lvl":
			profile.Level = flags.Level
		case "trust":
			profile.Trust = flags.Trust
		case "pot":
			profile.Potential = flags.Potential
		case "module":
			profile.ModuleID = flags.ModuleID
		case "targets":
			profile.Targets = flags.Targets
		}
	})
	return profile
}

// parseRange parses "min:max:step" or "min:max" (default step). Empty
// means the default range.
func parseRange(s string) (*model.Range, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("range %q: want min:max[:step]", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		vals[i] = v
	}
	r := model.Range{Min: vals[0], Max: vals[1]}
	if len(vals) == 3 {
		r.Step = vals[2]
	}
	return &r, nil
}
