package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/stattek/starstruck/internal/entity"
)

// enemyDefeated awards experience, installs a replacement enemy and enters
// StateLevelingUp when the award crossed a threshold.
func (e *Encounter) enemyDefeated(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "encounter.enemy_defeated")
	defer span.End()

	defeated := e.enemy
	xp := defeated.DropXP(e.player.GetLevel())
	e.kills++

	e.record("%s is defeated! %s gains %d XP.", defeated.GetName(), e.player.GetName(), xp)
	leveled := e.player.GainXP(xp)

	span.SetAttributes(
		attribute.String("enemy", defeated.GetName()),
		attribute.String("enemy.id", defeated.ID),
		attribute.Int("enemy.level", defeated.GetLevel()),
		attribute.Int("xp", xp),
		attribute.Bool("leveled", leveled),
		attribute.Int("kills", e.kills),
	)
	e.log.Info("enemy defeated", "enemy", defeated.GetName(), "id", defeated.ID,
		"xp", xp, "kills", e.kills, "turn", e.turns)

	if leveled {
		e.state = StateLevelingUp
		e.promptGrowth()
	}

	e.spawnEnemy()
}

// spawnEnemy draws a new enemy for the player's current level.
func (e *Encounter) spawnEnemy() {
	def := e.catalogs.Enemies.CreateRandom(e.player.GetLevel(), e.rng)
	e.enemy = entity.NewEnemyFromDef(def, e.rng)
	e.record("A wild %s appears!", e.enemy.GetName())
}

// chooseGrowth applies one pending level-up. Anything but IntentLevelUp is
// rejected while a choice is pending.
func (e *Encounter) chooseGrowth(ctx context.Context, in Input) bool {
	if in.Intent != IntentLevelUp {
		e.warn("Choose a stat to grow first.")
		return false
	}

	_, span := e.tracer.Start(ctx, "encounter.level_up")
	defer span.End()

	if !e.player.LevelUp(in.Growth) {
		e.warn("Unknown growth choice.")
		span.SetAttributes(attribute.Bool("success", false))
		return false
	}

	remaining := e.player.PendingLevelUps()
	span.SetAttributes(
		attribute.String("growth", in.Growth.String()),
		attribute.Int("level", e.player.GetLevel()),
		attribute.Int("pending", remaining),
		attribute.Bool("success", true),
	)
	e.log.Info("level up", "player", e.player.GetName(), "growth", in.Growth.String(),
		"level", e.player.GetLevel(), "pending", remaining)

	e.record("%s grows in %s and is fully restored.", e.player.GetName(), in.Growth)
	if remaining > 0 {
		e.promptGrowth()
		return true
	}
	e.state = StateMain
	return true
}

func (e *Encounter) promptGrowth() {
	pending := e.player.PendingLevelUps()
	if pending > 1 {
		e.record("%s reached level %d! Choose %d growths.", e.player.GetName(), e.player.GetLevel(), pending)
		return
	}
	e.record("%s reached level %d! Choose a growth.", e.player.GetName(), e.player.GetLevel())
}

// playerDied ends the session.
func (e *Encounter) playerDied(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "encounter.player_died")
	defer span.End()

	e.state = StateDead
	e.playing = false

	cause := e.lastBlow
	span.SetAttributes(
		attribute.String("cause", cause.source),
		attribute.Bool("cause.status", cause.status),
		attribute.Int("level", e.player.GetLevel()),
		attribute.Int("kills", e.kills),
		attribute.Int("turns", e.turns),
	)
	e.log.Info("player died", "player", e.player.GetName(), "cause", cause.source,
		"level", e.player.GetLevel(), "kills", e.kills, "turns", e.turns)

	switch {
	case cause.source == "":
		e.record("%s has fallen.", e.player.GetName())
	case cause.status:
		e.record("%s succumbs to %s.", e.player.GetName(), cause.source)
	default:
		e.record("%s has been slain by %s.", e.player.GetName(), cause.source)
	}
}
