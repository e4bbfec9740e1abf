// Package calculator is the engine facade used by the route layer. It
// resolves operator and enemy selectors, enforces the sweep grid cap and
// consults the optional result cache.
package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/arkdps/internal/game/combat"
	"github.com/udisondev/arkdps/internal/game/enemy"
	"github.com/udisondev/arkdps/internal/game/operator"
	"github.com/udisondev/arkdps/internal/model"
)

// ErrGridTooLarge rejects sweeps above the configured point cap.
var ErrGridTooLarge = fmt.Errorf("sweep grid too large: %w", model.ErrInvalidConfiguration)

// DefaultMaxGridPoints caps a sweep when Options leaves it zero.
const DefaultMaxGridPoints = 20000

// Options tune a Service.
type Options struct {
	MaxGridPoints int
	Workers       int         // 0 = GOMAXPROCS
	Cache         ResultCache // nil disables caching
}

// Service answers calculate and sweep requests. It is safe for concurrent
// use once the registries are populated.
type Service struct {
	operators *operator.Registry
	enemies   *enemy.Catalog

	cache         ResultCache
	maxGridPoints int
	workers       int
}

// New creates a Service over populated registries.
func New(operators *operator.Registry, enemies *enemy.Catalog, opts Options) *Service {
	if opts.MaxGridPoints <= 0 {
		opts.MaxGridPoints = DefaultMaxGridPoints
	}
	return &Service{
		operators:     operators,
		enemies:       enemies,
		cache:         opts.Cache,
		maxGridPoints: opts.MaxGridPoints,
		workers:       opts.Workers,
	}
}

// EnemySelector picks the target by catalog id or by explicit stats.
// Exactly one must be set.
type EnemySelector struct {
	EnemyID string       `json:"enemyId,omitempty"`
	Enemy   *model.Stats `json:"enemy,omitempty"`
}

// resolveEnemy returns validated enemy stats for the selector.
func (s *Service) resolveEnemy(sel EnemySelector) (model.Stats, error) {
	var stats model.Stats
	switch {
	case sel.EnemyID != "" && sel.Enemy != nil:
		return model.Stats{}, fmt.Errorf("both enemyId and enemy given: %w", model.ErrInvalidConfiguration)
	case sel.EnemyID != "":
		st, err := s.enemies.Stats(sel.EnemyID)
		if err != nil {
			return model.Stats{}, err
		}
		stats = st
	case sel.Enemy != nil:
		stats = *sel.Enemy
	default:
		return model.Stats{}, fmt.Errorf("enemy required: %w", model.ErrInvalidConfiguration)
	}
	if err := stats.Validate(); err != nil {
		return model.Stats{}, fmt.Errorf("enemy: %w", err)
	}
	return stats, nil
}

// CalculateRequest is a single simulation.
type CalculateRequest struct {
	OperatorID string               `json:"operatorId"`
	Config     model.OperatorConfig `json:"config"`
	SkillID    string               `json:"skillId"`
	LevelIndex int                  `json:"levelIndex"`
	EnemySelector
}

// OperatorSummary describes the unit a result was computed for.
type OperatorSummary struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Progression model.Progression `json:"progression"`
	Stats       model.Stats       `json:"stats"`
}

// SkillSummary names the simulated skill level.
type SkillSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	LevelIndex int    `json:"levelIndex"`
}

// CalculateResponse is one simulation plus its cycle summary.
type CalculateResponse struct {
	Operator OperatorSummary        `json:"operator"`
	Skill    SkillSummary           `json:"skill"`
	Result   model.SimulationResult `json:"result"`
	Cycle    model.CycleResult      `json:"cycle"`
}

// Calculate simulates one skill level against one enemy.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error) {
	enemyStats, err := s.resolveEnemy(req.EnemySelector)
	if err != nil {
		return CalculateResponse{}, err
	}
	if req.SkillID == "" {
		req.SkillID = model.BasicAttackSkillID
	}
	resolved := CalculateRequest{
		OperatorID:    req.OperatorID,
		Config:        req.Config,
		SkillID:       req.SkillID,
		LevelIndex:    req.LevelIndex,
		EnemySelector: EnemySelector{Enemy: &enemyStats},
	}

	var resp CalculateResponse
	fingerprint, hit := s.lookup(ctx, KindCalculate, resolved, &resp)
	if hit {
		return resp, nil
	}

	unit, err := s.operators.Resolve(req.OperatorID, req.Config)
	if err != nil {
		return CalculateResponse{}, err
	}
	sk, err := unit.Skill(req.SkillID)
	if err != nil {
		return CalculateResponse{}, err
	}
	result, err := combat.Simulate(unit, req.SkillID, req.LevelIndex, enemyStats)
	if err != nil {
		return CalculateResponse{}, err
	}
	cycle, err := combat.Cycle(unit, req.SkillID, req.LevelIndex, enemyStats)
	if err != nil {
		return CalculateResponse{}, err
	}

	resp = CalculateResponse{
		Operator: OperatorSummary{
			ID:          unit.ID,
			Name:        unit.Stats.Name(),
			Progression: unit.Progression,
			Stats:       unit.Stats,
		},
		Skill: SkillSummary{
			ID:         sk.ID,
			Name:       sk.Name,
			Level:      sk.Levels[req.LevelIndex].Level,
			LevelIndex: req.LevelIndex,
		},
		Result: result,
		Cycle:  cycle,
	}
	slog.Debug("calculated", "operator", unit.ID, "skill", sk.ID, "level_index", req.LevelIndex, "dps", result.DPS)
	s.store(ctx, fingerprint, KindCalculate, resp)
	return resp, nil
}

// SweepRequest sweeps one skill level over defense and resistance.
type SweepRequest struct {
	OperatorID string               `json:"operatorId"`
	Config     model.OperatorConfig `json:"config"`
	SkillID    string               `json:"skillId"`
	LevelIndex int                  `json:"levelIndex"`
	EnemySelector
	Def *model.Range `json:"defRange,omitempty"`
	Res *model.Range `json:"resRange,omitempty"`
}

// Sweep validates both axes, enforces the grid cap and runs the sweep.
func (s *Service) Sweep(ctx context.Context, req SweepRequest) (model.SweepResponse, error) {
	enemyStats, err := s.resolveEnemy(req.EnemySelector)
	if err != nil {
		return model.SweepResponse{}, err
	}
	if req.SkillID == "" {
		req.SkillID = model.BasicAttackSkillID
	}
	resolved := model.SweepRequest{
		OperatorID: req.OperatorID,
		Config:     req.Config,
		SkillID:    req.SkillID,
		LevelIndex: req.LevelIndex,
		Enemy:      enemyStats,
		Def:        req.Def,
		Res:        req.Res,
	}
	def, res := resolved.Axes()
	if err := def.Validate(); err != nil {
		return model.SweepResponse{}, fmt.Errorf("def range: %w", err)
	}
	if err := res.Validate(); err != nil {
		return model.SweepResponse{}, fmt.Errorf("res range: %w", err)
	}
	if points := pointCount(def) + pointCount(res); !(points <= float64(s.maxGridPoints)) {
		return model.SweepResponse{}, fmt.Errorf("%.0f points, cap %d: %w", points, s.maxGridPoints, ErrGridTooLarge)
	}
	resolved.Def, resolved.Res = &def, &res

	var resp model.SweepResponse
	fingerprint, hit := s.lookup(ctx, KindSweep, resolved, &resp)
	if hit {
		return resp, nil
	}

	unit, err := s.operators.Resolve(req.OperatorID, req.Config)
	if err != nil {
		return model.SweepResponse{}, err
	}
	in := combat.SweepInput{
		Unit:       unit,
		SkillID:    req.SkillID,
		LevelIndex: req.LevelIndex,
		Enemy:      enemyStats,
		Def:        def,
		Res:        res,
	}
	resp, err = combat.Sweep(ctx, in, s.workers)
	if err != nil {
		return model.SweepResponse{}, err
	}
	slog.Debug("sweep computed", "operator", unit.ID, "skill", req.SkillID, "points", in.GridPoints(), "average_dps", resp.AverageDPS)
	s.store(ctx, fingerprint, KindSweep, resp)
	return resp, nil
}

// pointCount is Range.Count in float64 so huge ranges cannot overflow.
func pointCount(r model.Range) float64 {
	return math.Floor((r.Max-r.Min)/r.Step) + 1
}

// lookup decodes a cached response into out and reports a hit. The
// returned fingerprint is empty when caching is off. Cache errors count as
// misses.
func (s *Service) lookup(ctx context.Context, kind string, request, out any) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	fingerprint, err := Fingerprint(kind, request)
	if err != nil {
		slog.Warn("result cache fingerprint failed", "kind", kind, "err", err)
		return "", false
	}
	payload, ok, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Warn("result cache read failed", "kind", kind, "err", err)
		}
		return fingerprint, false
	}
	if !ok {
		return fingerprint, false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		slog.Warn("result cache entry undecodable", "kind", kind, "fingerprint", fingerprint, "err", err)
		return fingerprint, false
	}
	slog.Debug("result cache hit", "kind", kind, "fingerprint", fingerprint)
	return fingerprint, true
}

func (s *Service) store(ctx context.Context, fingerprint, kind string, resp any) {
	if s.cache == nil || fingerprint == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		slog.Warn("result cache encode failed", "kind", kind, "err", err)
		return
	}
	if err := s.cache.Put(ctx, fingerprint, kind, payload); err != nil {
		slog.Warn("result cache write failed", "kind", kind, "err", err)
	}
}
