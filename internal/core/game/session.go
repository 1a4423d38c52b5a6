package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/storage"
	"github.com/zeusync/darkzone/internal/core/systems"
)

var (
	ErrUnknownLevel      = errors.New("unknown level")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrGameCompleted     = errors.New("no level left")
	ErrNotStarted        = errors.New("session not started")
)

// Status is a snapshot of a session, safe to read from other goroutines.
type Status struct {
	Session        string  `json:"session"`
	Level          int     `json:"level"`
	LevelName      string  `json:"level_name"`
	Difficulty     string  `json:"difficulty"`
	Time           float64 `json:"time"`
	Enemies        int     `json:"enemies"`
	StageCompleted bool    `json:"stage_completed"`
	GameCompleted  bool    `json:"game_completed"`
	PlayerDead     bool    `json:"player_dead"`
	NewBestTime    bool    `json:"new_best_time"`
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Config *config.Config
	// Levels holds <name>.txt files. Defaults to config LevelDir, then the
	// built-in levels.
	Levels fs.FS
	Sinks  sinks.Sinks
	Logger log.Log
	// Progress keeps best times between runs. Nil keeps them in memory only.
	Progress storage.Storage
}

// ProgressKey is the storage key of the campaign progress record.
const ProgressKey = "progress"

// Progress is the persisted campaign record: best completion time per
// difficulty and level number.
type Progress struct {
	BestTimes map[string]map[int]float64 `yaml:"best_times"`
}

// Session runs a campaign on one engine: it builds a fresh World per level and
// tracks stage completion, player death and the best time of every level per
// difficulty.
type Session struct {
	ID     uuid.UUID
	Engine *systems.Engine
	World  *World

	cfg    config.Config
	levels fs.FS
	sinks  sinks.Sinks
	logger log.Log
	store  storage.Storage

	current        int
	started        bool
	stageCompleted bool
	gameCompleted  bool
	playerDead     bool
	newBestTime    bool
	finishTime     float64
	best           map[string]map[int]float64

	status atomic.Pointer[Status]
}

// NewSession returns an idle session driving engine.
func NewSession(engine *systems.Engine, opts SessionOptions) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	levels := opts.Levels
	if levels == nil {
		if cfg.Game.LevelDir != "" {
			levels = os.DirFS(cfg.Game.LevelDir)
		} else {
			levels = level.Builtin()
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = engine.Logger()
	}

	id := uuid.New()
	s := &Session{
		ID:     id,
		Engine: engine,
		cfg:    *cfg,
		levels: levels,
		sinks:  opts.Sinks,
		logger: logger.With(log.String("session", id.String())),
		store:  opts.Progress,
		best:   make(map[string]map[int]float64),
	}
	engine.Paused = true
	s.publishStatus()
	return s
}

// Preflight parses every level of the campaign so that a broken file is reported
// before play starts rather than when it is reached.
func (s *Session) Preflight(ctx context.Context) error {
	grids, err := level.LoadAll(ctx, s.levels, s.cfg.Game.Levels)
	if err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	for i, g := range grids {
		s.logger.Debug("level ok",
			log.Int("level", i+1),
			log.String("name", g.Name()),
			log.Int("enemies", g.Count(level.Enemy)+g.Count(level.UnarmedEnemy)+g.Count(level.GunnerEnemy)+g.Count(level.Patroller)),
			log.Uint64("fingerprint", g.Fingerprint()),
		)
	}
	return nil
}

// LoadProgress restores best times saved by an earlier run. A missing record is
// not an error.
func (s *Session) LoadProgress(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	var p Progress
	err := s.store.Read(ctx, ProgressKey, &p)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	for difficulty, times := range p.BestTimes {
		if s.best[difficulty] == nil {
			s.best[difficulty] = make(map[int]float64, len(times))
		}
		for n, t := range times {
			if prev, ok := s.best[difficulty][n]; !ok || t < prev {
				s.best[difficulty][n] = t
			}
		}
	}
	s.logger.Debug("progress loaded", log.Int("difficulties", len(p.BestTimes)))
	return nil
}

func (s *Session) saveProgress(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Write(ctx, ProgressKey, Progress{BestTimes: s.best}); err != nil {
		s.logger.Warn("save progress failed", log.Error(err))
	}
}

// Start loads level n (1-based, in campaign order) on a cleared engine.
func (s *Session) Start(n int) error {
	if n < 1 || n > len(s.cfg.Game.Levels) {
		return fmt.Errorf("start level %d: %w", n, ErrUnknownLevel)
	}
	name := s.cfg.Game.Levels[n-1]
	grid, err := level.Load(s.levels, name)
	if err != nil {
		return fmt.Errorf("start level %d: %w", n, err)
	}

	e := s.Engine
	e.Clear()
	seed := s.cfg.Engine.Seed
	if seed == 0 {
		seed = grid.Fingerprint()
	}
	e.Reseed(seed)

	cfg := s.cfg
	w := NewWorld(e, Options{Config: &cfg, Sinks: s.sinks, Logger: s.logger})
	if err := e.Init(); err != nil {
		return fmt.Errorf("start level %d: %w", n, err)
	}
	LoadLevel(w, grid)

	s.World = w
	s.current = n
	s.started = true
	s.stageCompleted, s.gameCompleted, s.playerDead, s.newBestTime = false, false, false, false
	s.finishTime = 0
	e.Paused = false

	s.logger.Info("level started",
		log.Int("level", n),
		log.String("name", name),
		log.String("difficulty", s.cfg.Game.Difficulty),
		log.Uint64("seed", seed),
	)
	s.publishStatus()
	return nil
}

// Restart reloads the current level.
func (s *Session) Restart() error {
	if !s.started {
		return ErrNotStarted
	}
	return s.Start(s.current)
}

// NextLevel advances the campaign.
func (s *Session) NextLevel() error {
	if !s.started {
		return ErrNotStarted
	}
	if s.current >= len(s.cfg.Game.Levels) {
		return ErrGameCompleted
	}
	return s.Start(s.current + 1)
}

// CheckWinConditions is run once per frame, before the simulation steps. The
// stage is completed when no enemy is left; the finish time becomes the level's
// best time when it beats the previous one.
func (s *Session) CheckWinConditions() {
	defer s.publishStatus()
	if !s.started {
		return
	}
	w := s.World
	if !s.playerDead && w.Player() == nil {
		s.playerDead = true
		s.logger.Info("player died", log.Float64("time", s.Engine.Time))
	}
	if s.stageCompleted || w.AI.Len() > 0 {
		return
	}

	s.stageCompleted = true
	s.finishTime = s.Engine.Time
	times := s.best[s.cfg.Game.Difficulty]
	if times == nil {
		times = make(map[int]float64)
		s.best[s.cfg.Game.Difficulty] = times
	}
	if prev, ok := times[s.current]; !ok || s.finishTime < prev {
		times[s.current] = s.finishTime
		s.newBestTime = true
		s.saveProgress(context.Background())
	}
	s.gameCompleted = s.current == len(s.cfg.Game.Levels)

	s.logger.Info("stage completed",
		log.Int("level", s.current),
		log.Float64("time", s.finishTime),
		log.Bool("best", s.newBestTime),
		log.Bool("game_completed", s.gameCompleted),
	)
}

// SetDifficulty selects a preset for the next Start.
func (s *Session) SetDifficulty(name string) error {
	if _, ok := s.cfg.Difficulties[name]; !ok {
		return fmt.Errorf("set difficulty %q: %w", name, ErrUnknownDifficulty)
	}
	s.cfg.Game.Difficulty = name
	s.publishStatus()
	return nil
}

// NextDifficulty rotates through the presets and returns the new one.
func (s *Session) NextDifficulty() string {
	names := s.cfg.DifficultyNames()
	i := slices.Index(names, s.cfg.Game.Difficulty)
	s.cfg.Game.Difficulty = names[(i+1)%len(names)]
	s.publishStatus()
	return s.cfg.Game.Difficulty
}

func (s *Session) Difficulty() string   { return s.cfg.Game.Difficulty }
func (s *Session) Level() int           { return s.current }
func (s *Session) StageCompleted() bool { return s.stageCompleted }
func (s *Session) GameCompleted() bool  { return s.gameCompleted }
func (s *Session) PlayerDead() bool     { return s.playerDead }
func (s *Session) NewBestTime() bool    { return s.newBestTime }

// FinishTime is the simulation time the stage was completed at.
func (s *Session) FinishTime() float64 { return s.finishTime }

// BestTime returns the best completion time of level n at a difficulty.
func (s *Session) BestTime(difficulty string, n int) (float64, bool) {
	t, ok := s.best[difficulty][n]
	return t, ok
}

// Unlocked is the number of levels selectable at a difficulty: every completed
// one plus the next.
func (s *Session) Unlocked(difficulty string) int {
	return min(len(s.cfg.Game.Levels), len(s.best[difficulty])+1)
}

// Status returns the latest snapshot.
func (s *Session) Status() Status { return *s.status.Load() }

func (s *Session) publishStatus() {
	st := &Status{
		Session:        s.ID.String(),
		Level:          s.current,
		Difficulty:     s.cfg.Game.Difficulty,
		Time:           s.Engine.Time,
		StageCompleted: s.stageCompleted,
		GameCompleted:  s.gameCompleted,
		PlayerDead:     s.playerDead,
		NewBestTime:    s.newBestTime,
	}
	if s.started {
		st.LevelName = s.cfg.Game.Levels[s.current-1]
		st.Enemies = s.World.AI.Len()
	}
	s.status.Store(st)
}
