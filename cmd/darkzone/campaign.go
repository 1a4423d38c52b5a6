package main

import (
	"errors"

	"github.com/zeusync/darkzone/internal/core/game"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// campaign drives a session without a player at the keyboard: a completed stage
// moves on to the next level, a dead player restarts the current one, and the
// last stage ends the run.
type campaign struct {
	session *game.Session
	logger  log.Log
	done    func()
}

func newCampaign(s *game.Session, logger log.Log, done func()) *campaign {
	return &campaign{session: s, logger: logger, done: done}
}

// frame runs on the simulation goroutine before each batch of steps.
func (c *campaign) frame() {
	s := c.session
	s.CheckWinConditions()

	var err error
	switch {
	case s.GameCompleted():
		c.done()
		return
	case s.StageCompleted():
		err = s.NextLevel()
	case s.PlayerDead():
		err = s.Restart()
	default:
		return
	}
	if err != nil && !errors.Is(err, game.ErrGameCompleted) {
		c.logger.Error("campaign stalled", log.Int("level", s.Level()), log.Error(err))
		c.done()
	}
}
