package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stattek/starstruck/internal/combat"
	"github.com/stattek/starstruck/internal/entity"
	"github.com/stattek/starstruck/internal/gamedata"
	"github.com/stattek/starstruck/internal/telemetry"
)

// Input is one intent from the driver. MoveIndex is read for IntentMagic
// and indexes AvailableMoves; Growth is read for IntentLevelUp.
type Input struct {
	Intent    Intent
	MoveIndex int
	Growth    entity.Growth
}

// Option configures an Encounter.
type Option func(*Encounter)

// WithRand sets the random source shared by every draw in the encounter.
func WithRand(rng *rand.Rand) Option {
	return func(e *Encounter) { e.rng = rng }
}

// WithLogger sets the structured logger.
func WithLogger(log logr.Logger) Option {
	return func(e *Encounter) { e.log = log }
}

// WithTracer sets the tracer used for encounter spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Encounter) { e.tracer = tracer }
}

// WithHistoryLimit bounds the number of event lines kept. Values below 1
// are ignored.
func WithHistoryLimit(n int) Option {
	return func(e *Encounter) {
		if n >= 1 {
			e.historyLimit = n
		}
	}
}

// Encounter holds the state of one player's fight against a stream of
// enemies. It is owned by its driver and is not safe for concurrent use.
type Encounter struct {
	catalogs *gamedata.Catalogs
	player   *entity.Player
	enemy    *entity.Enemy
	resolver *combat.Resolver

	state        State
	playing      bool
	history      []string
	historyLimit int
	turns        int
	kills        int

	// lastBlow is the most recent source of damage to the player.
	lastBlow blow

	rng    *rand.Rand
	log    logr.Logger
	tracer trace.Tracer
}

// blow names what last hurt the player: the enemy or a status effect.
type blow struct {
	source string
	status bool
}

// New creates an encounter. When enemy is nil one is drawn from the
// catalog's enemy registry for the player's level.
func New(catalogs *gamedata.Catalogs, player *entity.Player, enemy *entity.Enemy, opts ...Option) *Encounter {
	e := &Encounter{
		catalogs:     catalogs,
		player:       player,
		enemy:        enemy,
		state:        StateMain,
		playing:      true,
		historyLimit: DefaultHistoryLimit,
		log:          logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.tracer == nil {
		e.tracer = telemetry.Tracer("encounter")
	}
	e.resolver = combat.NewResolver(e.rng)

	if e.enemy == nil || e.enemy.IsDead() {
		e.spawnEnemy()
	} else {
		e.record("A wild %s appears!", e.enemy.GetName())
	}

	if e.player.IsDead() {
		e.state = StateDead
		e.playing = false
		e.record("%s has fallen. The encounter is over.", e.player.GetName())
	}
	return e
}

// Player returns the player actor.
func (e *Encounter) Player() *entity.Player { return e.player }

// Enemy returns the current enemy.
func (e *Encounter) Enemy() *entity.Enemy { return e.enemy }

// Catalogs returns the read-only tables the encounter was built with.
func (e *Encounter) Catalogs() *gamedata.Catalogs { return e.catalogs }

// State returns the current encounter state.
func (e *Encounter) State() State { return e.state }

// IsPlaying reports whether the session is still running.
func (e *Encounter) IsPlaying() bool { return e.playing }

// TurnCount returns the number of completed turns.
func (e *Encounter) TurnCount() int { return e.turns }

// Kills returns the number of enemies defeated.
func (e *Encounter) Kills() int { return e.kills }

// History returns a copy of the event log, oldest first.
func (e *Encounter) History() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// AvailableMoves returns the magic moves the player may select at their
// current level. Input.MoveIndex indexes this slice.
func (e *Encounter) AvailableMoves() []gamedata.MoveDef {
	return e.catalogs.Moves.Available(e.player.GetLevel())
}

// Step processes one intent and reports whether it succeeded, together with
// the event log. Rejected intents leave the encounter untouched apart from a
// warning line.
func (e *Encounter) Step(ctx context.Context, in Input) (bool, []string) {
	ctx, span := e.tracer.Start(ctx, "encounter.step")
	defer span.End()

	span.SetAttributes(
		attribute.String("intent", in.Intent.String()),
		attribute.String("state", e.state.String()),
		attribute.Int("turn", e.turns),
	)

	var ok bool
	switch e.state {
	case StateDead:
		e.warn("%s has fallen. The encounter is over.", e.player.GetName())
	case StateLevelingUp:
		ok = e.chooseGrowth(ctx, in)
	default:
		ok = e.runTurn(ctx, in)
	}

	span.SetAttributes(
		attribute.Bool("success", ok),
		attribute.String("state.after", e.state.String()),
	)
	return ok, e.History()
}

// runTurn advances the exchange by one event. The faster actor goes first,
// the slower one catches up once the faster has gone, and the event ends as
// soon as the turn is over or someone dies.
func (e *Encounter) runTurn(ctx context.Context, in Input) bool {
	move, ok := e.validate(in)
	if !ok {
		return false
	}

	if e.enemyEligible() {
		e.enemyAct(ctx)
		if e.settle(ctx) {
			return in.Intent == IntentNone && e.state != StateDead
		}
	}

	if in.Intent == IntentNone {
		return true
	}
	if !e.playerEligible() {
		e.warn("%s must wait for %s.", e.player.GetName(), e.enemy.GetName())
		return false
	}

	result := e.playerAct(ctx, in, move)
	if e.settle(ctx) {
		return result.Success
	}

	if e.enemyEligible() {
		e.enemyAct(ctx)
		e.settle(ctx)
	}
	return result.Success
}

// validate checks an intent against the current state without mutating
// anything. For magic it returns the selected move.
func (e *Encounter) validate(in Input) (*gamedata.MoveDef, bool) {
	switch in.Intent {
	case IntentNone:
		return nil, true
	case IntentAttack, IntentDefend, IntentMagic:
	case IntentLevelUp:
		e.warn("There is no level-up to choose.")
		return nil, false
	default:
		e.warn("Invalid move")
		return nil, false
	}

	if e.player.IsDead() {
		e.warn("%s has fallen. The encounter is over.", e.player.GetName())
		return nil, false
	}
	if e.player.HasGone() {
		e.warn("%s has already gone this turn!", e.player.GetName())
		return nil, false
	}
	if in.Intent != IntentMagic {
		return nil, true
	}

	if in.MoveIndex < 0 || in.MoveIndex >= e.catalogs.Moves.AvailablePrefix(e.player.GetLevel()) {
		e.warn("That move is not available yet.")
		return nil, false
	}
	move := e.catalogs.Moves.Get(in.MoveIndex)
	if !e.resolver.CanCast(e.player, move) {
		e.warn("%s doesn't have enough mana for %s!", e.player.GetName(), move.Name)
		return nil, false
	}
	return move, true
}

// playerEligible: ties go to the player.
func (e *Encounter) playerEligible() bool {
	return !e.player.HasGone() && !e.player.IsDead() &&
		(e.player.GetSpeed() >= e.enemy.GetSpeed() || e.enemy.HasGone())
}

func (e *Encounter) enemyEligible() bool {
	return !e.enemy.HasGone() && !e.enemy.IsDead() &&
		(e.enemy.GetSpeed() > e.player.GetSpeed() || e.player.HasGone())
}

func (e *Encounter) playerAct(ctx context.Context, in Input, move *gamedata.MoveDef) combat.ActionResult {
	switch in.Intent {
	case IntentMagic:
		return e.perform(ctx, e.player, e.enemy, combat.MoveMagic, move)
	case IntentDefend:
		return e.perform(ctx, e.player, e.enemy, combat.MoveDefend, nil)
	default:
		return e.perform(ctx, e.player, e.enemy, combat.MoveAttack, nil)
	}
}

// enemyAct pops the enemy's next planned move. Planned magic falls back to
// an attack when nothing is affordable.
func (e *Encounter) enemyAct(ctx context.Context) combat.ActionResult {
	kind := e.enemy.NextMove(e.rng)

	var move *gamedata.MoveDef
	if kind == combat.MoveMagic {
		move = e.enemy.ChooseMagic(e.catalogs.Moves, e.rng)
		if move == nil {
			kind = combat.MoveAttack
		}
	}
	result := e.perform(ctx, e.enemy, e.player, kind, move)
	if result.Damage > 0 {
		e.lastBlow = blow{source: e.enemy.GetName()}
	}
	return result
}

// perform resolves one action and records its outcome.
func (e *Encounter) perform(ctx context.Context, user, target combat.Combatant, kind combat.MoveType, move *gamedata.MoveDef) combat.ActionResult {
	_, span := e.tracer.Start(ctx, "combat.turn")
	defer span.End()

	var result combat.ActionResult
	switch kind {
	case combat.MoveMagic:
		result = e.resolver.Magic(user, target, move)
	case combat.MoveDefend:
		result = e.resolver.Defend(user)
	default:
		result = e.resolver.Attack(user, target)
	}

	span.SetAttributes(
		attribute.String("actor", user.GetName()),
		attribute.String("target", target.GetName()),
		attribute.String("move", kind.String()),
		attribute.Int("turn", e.turns),
		attribute.Bool("success", result.Success),
	)
	if result.MoveName != "" {
		span.SetAttributes(attribute.String("move.name", result.MoveName))
	}
	if result.Damage > 0 {
		span.SetAttributes(attribute.Int("damage", result.Damage))
	}
	if result.StatusAdded != "" {
		span.SetAttributes(attribute.String("status_applied", result.StatusAdded))
	}

	e.log.V(1).Info("action", "actor", user.GetName(), "move", kind.String(),
		"name", result.MoveName, "damage", result.Damage, "success", result.Success)
	e.record("%s", result.Message)
	return result
}

// settle runs death checks, then end-of-turn cleanup once both actors have
// gone or someone died, then death checks again. It reports whether the
// turn is over, which ends the current event.
func (e *Encounter) settle(ctx context.Context) bool {
	died := e.checkEntities(ctx)
	if e.state == StateDead {
		return true
	}
	if !died && !(e.player.HasGone() && e.enemy.HasGone()) {
		return false
	}

	e.endTurn(ctx)
	e.checkEntities(ctx)
	return true
}

// checkEntities resolves at most one death. The player is checked first.
func (e *Encounter) checkEntities(ctx context.Context) bool {
	if e.state == StateDead {
		return true
	}
	if e.player.IsDead() {
		e.playerDied(ctx)
		return true
	}
	if e.enemy.IsDead() {
		e.enemyDefeated(ctx)
		return true
	}
	return false
}

// endTurn drops defend bonuses, ticks statuses (player first) and clears
// both turn flags.
func (e *Encounter) endTurn(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "combat.end_turn")
	defer span.End()

	e.player.StopDefending()
	e.enemy.StopDefending()

	ticks := 0
	for _, actor := range []combat.Combatant{e.player, e.enemy} {
		for _, tick := range actor.TickStatuses(e.rng) {
			e.recordTick(actor, tick)
			if actor == e.player && !tick.IsHealing && tick.Amount > 0 {
				e.lastBlow = blow{source: tick.Name, status: true}
			}
			ticks++
		}
	}

	e.player.AllowMove()
	e.enemy.AllowMove()
	e.turns++

	span.SetAttributes(
		attribute.Int("turn", e.turns),
		attribute.Int("status_ticks", ticks),
		attribute.Int("player.hp", e.player.GetHP()),
		attribute.Int("enemy.hp", e.enemy.GetHP()),
	)
}

func (e *Encounter) recordTick(actor combat.Combatant, tick combat.StatusTick) {
	if tick.IsHealing {
		e.record("%s recovers %d health from %s.", actor.GetName(), tick.Amount, tick.Name)
	} else {
		e.record("%s takes %d damage from %s.", actor.GetName(), tick.Amount, tick.Name)
	}
	if tick.Ended {
		e.record("%s on %s wears off.", tick.Name, actor.GetName())
	}
}

func (e *Encounter) record(format string, args ...any) {
	e.history = append(e.history, fmt.Sprintf(format, args...))
	if over := len(e.history) - e.historyLimit; over > 0 {
		e.history = append(e.history[:0], e.history[over:]...)
	}
}

func (e *Encounter) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.log.V(1).Info("rejected", "reason", msg, "state", e.state.String())
	e.record("%s", msg)
}
