package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/game"
	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/systems"
)

const room = "XXXXXX\nXS..EX\nXXXXXX\n"

func newCampaignSession(t *testing.T) (*game.Session, *campaign, *int) {
	cfg := config.Default()
	cfg.Game.Levels = []string{"a", "b"}
	levels := fstest.MapFS{
		"a.txt": {Data: []byte(room)},
		"b.txt": {Data: []byte(room)},
	}
	s := game.NewSession(systems.NewEngine(systems.Options{}), game.SessionOptions{Config: cfg, Levels: levels, Logger: log.NewNop()})
	require.NoError(t, s.Start(1))

	stopped := 0
	return s, newCampaign(s, log.NewNop(), func() { stopped++ }), &stopped
}

func killEnemies(s *game.Session) {
	s.World.AI.Each(func(ai *game.AI) { ai.Destroy() })
}

func TestCampaign_AdvancesAndFinishes(t *testing.T) {
	s, c, stopped := newCampaignSession(t)

	c.frame()
	assert.Equal(t, 1, s.Level())

	killEnemies(s)
	c.frame()
	assert.Equal(t, 2, s.Level())
	assert.False(t, s.StageCompleted())

	killEnemies(s)
	c.frame()
	assert.True(t, s.GameCompleted())
	assert.Equal(t, 1, *stopped)
}

func TestCampaign_RestartsAfterDeath(t *testing.T) {
	s, c, stopped := newCampaignSession(t)
	s.World.Player().Destroy()

	c.frame()
	assert.Equal(t, 1, s.Level())
	assert.False(t, s.PlayerDead())
	assert.NotNil(t, s.World.Player())
	assert.Zero(t, *stopped)
}
