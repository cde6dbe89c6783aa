package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/stattek/starstruck/internal/combat"
	"github.com/stattek/starstruck/internal/entity"
	"github.com/stattek/starstruck/internal/gamedata"
	"github.com/stattek/starstruck/internal/telemetry"
)

func testCatalogs(t testing.TB) *gamedata.Catalogs {
	t.Helper()
	catalogs, err := gamedata.LoadCatalogs()
	if err != nil {
		t.Fatalf("LoadCatalogs() error: %v", err)
	}
	return catalogs
}

func newHero(def gamedata.StatsDef) *entity.Player {
	return entity.NewPlayer("Hero", 1, combat.NewStats(def))
}

// newDummy builds an enemy from its own random source so the encounter's
// draws are not disturbed.
func newDummy(level int, def gamedata.StatsDef) *entity.Enemy {
	return entity.NewEnemy("Dummy", level, combat.NewStats(def), rand.New(rand.NewSource(99)))
}

func newTestEncounter(t *testing.T, seed int64, player *entity.Player, enemy *entity.Enemy, opts ...Option) *Encounter {
	t.Helper()
	base := []Option{
		WithRand(rand.New(rand.NewSource(seed))),
		WithTracer(telemetry.NoopTracer()),
		WithLogger(testr.New(t)),
	}
	return New(testCatalogs(t), player, enemy, append(base, opts...)...)
}

var (
	heroDef  = gamedata.StatsDef{Health: 10, Mana: 10, Speed: 10, Strength: 10, Magic: 10}
	dummyDef = gamedata.StatsDef{Health: 10, Speed: 5, Strength: 2, Magic: 1}
	ctx      = context.Background()
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateMain, "main"},
		{StateLevelingUp, "leveling_up"},
		{StateDead, "dead"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestIntentString(t *testing.T) {
	tests := []struct {
		intent   Intent
		expected string
	}{
		{IntentNone, "none"},
		{IntentAttack, "attack"},
		{IntentMagic, "magic"},
		{IntentDefend, "defend"},
		{IntentLevelUp, "level_up"},
		{Intent(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.expected {
			t.Errorf("Intent(%d).String() = %q, want %q", tt.intent, got, tt.expected)
		}
	}
}

func TestNewDrawsEnemyWhenNil(t *testing.T) {
	e := newTestEncounter(t, 12345, newHero(heroDef), nil)

	require.NotNil(t, e.Enemy())
	assert.LessOrEqual(t, e.Enemy().GetLevel(), 1+gamedata.EnemyLevelAllowance)
	assert.Equal(t, []string{fmt.Sprintf("A wild %s appears!", e.Enemy().GetName())}, e.History())
	assert.Equal(t, StateMain, e.State())
	assert.True(t, e.IsPlaying())
	assert.Equal(t, 0, e.TurnCount())
}

func TestPlayerFasterAttackResolvesFirst(t *testing.T) {
	const seed = 4242
	hero := newHero(heroDef)
	dummy := newDummy(1, dummyDef)
	e := newTestEncounter(t, seed, hero, dummy)

	// The player's attack is the encounter's first draw: Intn(strength/2).
	want := 10 + rand.New(rand.NewSource(seed)).Intn(5)

	ok, history := e.Step(ctx, Input{Intent: IntentAttack})

	require.True(t, ok)
	assert.Equal(t, 55-want, dummy.GetHP(), "enemy loses exactly the rolled damage")
	require.Len(t, history, 3)
	assert.Equal(t, fmt.Sprintf("Hero attacks Dummy for %d damage!", want), history[1])
	assert.True(t, strings.HasPrefix(history[2], "Dummy "), "enemy catches up after the player: %q", history[2])
	assert.Equal(t, 1, e.TurnCount())
	assert.False(t, hero.HasGone())
	assert.False(t, dummy.HasGone())
}

func TestPlayerActionLeavesSlowerEnemyPending(t *testing.T) {
	const seed = 77
	hero := newHero(heroDef)
	dummy := newDummy(1, dummyDef)
	e := newTestEncounter(t, seed, hero, dummy)

	want := 10 + rand.New(rand.NewSource(seed)).Intn(5)

	require.True(t, e.playerEligible())
	require.False(t, e.enemyEligible())

	result := e.playerAct(ctx, Input{Intent: IntentAttack}, nil)
	over := e.settle(ctx)

	require.True(t, result.Success)
	assert.False(t, over)
	assert.Equal(t, want, result.Damage)
	assert.Equal(t, 55-want, dummy.GetHP())
	assert.True(t, hero.HasGone())
	assert.False(t, dummy.HasGone(), "enemy has not acted yet")
	assert.True(t, e.enemyEligible(), "enemy may now catch up")

	second := e.playerAct(ctx, Input{Intent: IntentAttack}, nil)
	assert.False(t, second.Success, "second action in the same turn is rejected")
	assert.Equal(t, 55-want, dummy.GetHP())
}

func TestEnemyFasterActsFirst(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 10, Speed: 20, Strength: 2})
	e := newTestEncounter(t, 8, hero, dummy)

	ok, history := e.Step(ctx, Input{Intent: IntentNone})
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.True(t, strings.HasPrefix(history[1], "Dummy "))
	assert.True(t, dummy.HasGone())
	assert.False(t, hero.HasGone())
	assert.Equal(t, 0, e.TurnCount())

	// Waiting again does nothing: the enemy already went.
	ok, history = e.Step(ctx, Input{Intent: IntentNone})
	assert.True(t, ok)
	assert.Len(t, history, 2)

	ok, history = e.Step(ctx, Input{Intent: IntentAttack})
	require.True(t, ok)
	assert.Len(t, history, 3)
	assert.True(t, strings.HasPrefix(history[2], "Hero attacks Dummy"))
	assert.Equal(t, 1, e.TurnCount())
	assert.False(t, dummy.HasGone())
	assert.False(t, hero.HasGone())
}

func TestSpeedTieFavoursPlayer(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 10, Speed: 10, Strength: 2})
	e := newTestEncounter(t, 3, hero, dummy)

	assert.True(t, e.playerEligible())
	assert.False(t, e.enemyEligible())

	_, history := e.Step(ctx, Input{Intent: IntentAttack})
	require.GreaterOrEqual(t, len(history), 3)
	assert.True(t, strings.HasPrefix(history[1], "Hero attacks"))
}

func TestRejectedIntentMutatesNothing(t *testing.T) {
	tests := []struct {
		name  string
		mana  int
		gone  bool
		input Input
		warn  string
	}{
		{"move past available prefix", 10, false, Input{Intent: IntentMagic, MoveIndex: 1}, "not available"},
		{"negative move index", 10, false, Input{Intent: IntentMagic, MoveIndex: -1}, "not available"},
		{"insufficient mana", 0, false, Input{Intent: IntentMagic, MoveIndex: 0}, "enough mana"},
		{"level up without pending", 10, false, Input{Intent: IntentLevelUp}, "no level-up"},
		{"unknown intent", 10, false, Input{Intent: Intent(42)}, "Invalid move"},
		{"already gone", 10, true, Input{Intent: IntentAttack}, "already gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := newHero(gamedata.StatsDef{Health: 10, Mana: tt.mana, Speed: 5, Strength: 10, Magic: 10})
			// A faster enemy would act first if validation let anything through.
			dummy := newDummy(1, gamedata.StatsDef{Health: 10, Speed: 20, Strength: 2})
			e := newTestEncounter(t, 1, hero, dummy)
			if tt.gone {
				hero.MarkGone()
			}

			heroHP, heroMP := hero.GetHP(), hero.GetMP()
			dummyHP := dummy.GetHP()
			queue := dummy.UpcomingMoves()

			ok, history := e.Step(ctx, tt.input)

			assert.False(t, ok)
			assert.Contains(t, history[len(history)-1], tt.warn)
			assert.Len(t, history, 2, "only the warning was added")
			assert.Equal(t, heroHP, hero.GetHP())
			assert.Equal(t, heroMP, hero.GetMP())
			assert.Equal(t, dummyHP, dummy.GetHP())
			assert.Equal(t, queue, dummy.UpcomingMoves(), "enemy did not act")
			assert.False(t, dummy.HasGone())
			assert.Equal(t, 0, e.TurnCount())
		})
	}
}

func TestMagicSpendsManaAndDamages(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, dummyDef)
	e := newTestEncounter(t, 21, hero, dummy)

	require.Len(t, e.AvailableMoves(), 1)
	fire := e.AvailableMoves()[0]

	ok, history := e.Step(ctx, Input{Intent: IntentMagic, MoveIndex: 0})

	require.True(t, ok)
	assert.Equal(t, 25-fire.ManaCost, hero.GetMP())
	assert.Less(t, dummy.GetHP(), 55)
	assert.True(t, strings.HasPrefix(history[1], "Hero casts FireOne on Dummy"))
}

func TestDefendEndsWithTheTurn(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, dummyDef)
	e := newTestEncounter(t, 5, hero, dummy)

	ok, history := e.Step(ctx, Input{Intent: IntentDefend})

	require.True(t, ok)
	assert.Equal(t, "Hero braces for impact!", history[1])
	assert.False(t, hero.GetStats().IsDefending())
	assert.Equal(t, 0, hero.GetStats().Defense)
	assert.Equal(t, 0, dummy.GetStats().Defense)
}

func TestEnemyDeathMidExchange(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 1, Speed: 5, Strength: 2}) // 5 HP
	e := newTestEncounter(t, 9, hero, dummy)

	ok, history := e.Step(ctx, Input{Intent: IntentAttack})

	require.True(t, ok)
	assert.True(t, dummy.IsDead())
	assert.Equal(t, 1, e.Kills())
	assert.Equal(t, 5, hero.XP())
	assert.Equal(t, StateMain, e.State())

	require.NotSame(t, dummy, e.Enemy(), "a new enemy is installed")
	assert.False(t, e.Enemy().IsDead())
	assert.False(t, e.Enemy().HasGone())
	assert.False(t, hero.HasGone())

	for _, line := range history {
		for _, verb := range []string{"Dummy attacks", "Dummy casts", "Dummy braces"} {
			assert.False(t, strings.HasPrefix(line, verb), "dead enemy acted: %q", line)
		}
	}
	assert.Contains(t, history, "Dummy is defeated! Hero gains 5 XP.")
	assert.Contains(t, history, fmt.Sprintf("A wild %s appears!", e.Enemy().GetName()))
}

func TestLevelUpFlow(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(2, gamedata.StatsDef{Health: 1, Speed: 5}) // drops 20 XP at level 1
	e := newTestEncounter(t, 9, hero, dummy)

	ok, _ := e.Step(ctx, Input{Intent: IntentAttack})
	require.True(t, ok)
	require.Equal(t, StateLevelingUp, e.State())
	assert.Equal(t, 2, hero.GetLevel())
	assert.Equal(t, 10, hero.XP())
	assert.Equal(t, 1, hero.PendingLevelUps())

	ok, history := e.Step(ctx, Input{Intent: IntentAttack})
	assert.False(t, ok, "actions wait for the growth choice")
	assert.Contains(t, history[len(history)-1], "Choose a stat")

	hero.TakeDamage(20)
	ok, _ = e.Step(ctx, Input{Intent: IntentLevelUp, Growth: entity.GrowthMagic})
	require.True(t, ok)
	assert.Equal(t, StateMain, e.State())
	assert.Equal(t, 11, hero.GetMagic())
	assert.Equal(t, hero.GetMaxHP(), hero.GetHP(), "level up fully restores")
	assert.Equal(t, 0, hero.PendingLevelUps())
}

func TestChainedLevelUps(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(3, gamedata.StatsDef{Health: 1, Speed: 5}) // drops 60 XP at level 1
	e := newTestEncounter(t, 9, hero, dummy)

	e.Step(ctx, Input{Intent: IntentAttack})
	require.Equal(t, StateLevelingUp, e.State())
	require.Equal(t, 3, hero.PendingLevelUps())
	assert.Equal(t, 4, hero.GetLevel())

	ok, _ := e.Step(ctx, Input{Intent: IntentLevelUp, Growth: entity.Growth(9)})
	assert.False(t, ok)
	assert.Equal(t, 3, hero.PendingLevelUps())

	for i := 0; i < 3; i++ {
		require.Equal(t, StateLevelingUp, e.State(), "choice %d", i)
		ok, _ := e.Step(ctx, Input{Intent: IntentLevelUp, Growth: entity.GrowthHealth})
		require.True(t, ok)
	}
	assert.Equal(t, StateMain, e.State())
	assert.Equal(t, 13, hero.GetStats().HealthBase)
}

func TestPlayerDeathIsTerminal(t *testing.T) {
	hero := newHero(gamedata.StatsDef{Health: 1, Speed: 5}) // 5 HP, no strength
	dummy := newDummy(1, gamedata.StatsDef{Health: 20, Speed: 20, Strength: 50})
	e := newTestEncounter(t, 13, hero, dummy)

	for i := 0; i < 50 && e.State() != StateDead; i++ {
		e.Step(ctx, Input{Intent: IntentAttack})
	}

	require.Equal(t, StateDead, e.State())
	assert.False(t, e.IsPlaying())
	assert.True(t, hero.IsDead())
	assert.Equal(t, 0, hero.GetHP())

	turns := e.TurnCount()
	ok, history := e.Step(ctx, Input{Intent: IntentAttack})
	assert.False(t, ok)
	assert.Contains(t, history[len(history)-1], "has fallen")
	assert.Equal(t, turns, e.TurnCount())
}

func TestStatusTicksAtEndOfTurn(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 100, Speed: 1, Strength: 1}) // 550 HP
	e := newTestEncounter(t, 17, hero, dummy)

	// snapshot 0 and base 3 tick for exactly 3
	dummy.ApplyStatus(combat.StatusEffect{Name: "Burn", BaseAmount: 3, RemainingTurns: 2})

	e.Step(ctx, Input{Intent: IntentDefend})
	assert.Equal(t, 547, dummy.GetHP())
	assert.Contains(t, e.History(), "Dummy takes 3 damage from Burn.")
	require.Len(t, dummy.GetStatusEffects(), 1)

	e.Step(ctx, Input{Intent: IntentDefend})
	assert.Equal(t, 544, dummy.GetHP())
	assert.Contains(t, e.History(), "Burn on Dummy wears off.")
	assert.Empty(t, dummy.GetStatusEffects())
}

func TestLethalStatusOnPlayerEndsEncounter(t *testing.T) {
	hero := newHero(heroDef)                                                     // 55 HP
	dummy := newDummy(1, gamedata.StatsDef{Health: 100, Speed: 1, Strength: 1}) // 550 HP
	e := newTestEncounter(t, 17, hero, dummy)

	hero.ApplyStatus(combat.StatusEffect{Name: "Burn", BaseAmount: 1000, RemainingTurns: 3})

	ok, history := e.Step(ctx, Input{Intent: IntentDefend})
	require.True(t, ok)
	require.Equal(t, StateDead, e.State())
	assert.False(t, e.IsPlaying())
	assert.Equal(t, 0, hero.GetHP())
	assert.Equal(t, "Hero succumbs to Burn.", history[len(history)-1])
	assert.Equal(t, 0, e.Kills())

	enemyHP := dummy.GetHP()
	ok, history = e.Step(ctx, Input{Intent: IntentAttack})
	assert.False(t, ok)
	assert.Contains(t, history[len(history)-1], "has fallen")
	assert.Equal(t, enemyHP, dummy.GetHP(), "no action after death")
}

func TestLethalStatusOnEnemyAwardsXP(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 10, Speed: 1, Strength: 1}) // 55 HP, drops 5 XP
	e := newTestEncounter(t, 17, hero, dummy)

	dummy.ApplyStatus(combat.StatusEffect{Name: "Burn", BaseAmount: 1000, RemainingTurns: 3})

	ok, history := e.Step(ctx, Input{Intent: IntentDefend})
	require.True(t, ok)
	assert.True(t, dummy.IsDead())
	assert.Equal(t, StateMain, e.State())
	assert.Equal(t, 1, e.Kills())
	assert.Equal(t, 5, hero.XP())
	assert.Equal(t, 1, e.TurnCount())

	require.NotSame(t, dummy, e.Enemy(), "a new enemy is installed")
	assert.False(t, e.Enemy().IsDead())
	assert.False(t, hero.HasGone())
	assert.False(t, hero.GetStats().IsDefending(), "cleanup ran before the death check")

	assert.Contains(t, history, "Dummy takes 55 damage from Burn.")
	assert.Contains(t, history, "Dummy is defeated! Hero gains 5 XP.")
	assert.Equal(t, fmt.Sprintf("A wild %s appears!", e.Enemy().GetName()), history[len(history)-1])
}

func TestNewWithDeadPlayerStartsOver(t *testing.T) {
	hero := newHero(gamedata.StatsDef{Health: 0, Speed: 10, Strength: 10})
	dummy := newDummy(1, dummyDef)
	e := newTestEncounter(t, 3, hero, dummy)

	require.True(t, hero.IsDead())
	assert.Equal(t, StateDead, e.State())
	assert.False(t, e.IsPlaying())
	assert.Contains(t, e.History(), "Hero has fallen. The encounter is over.")

	ok, _ := e.Step(ctx, Input{Intent: IntentAttack})
	assert.False(t, ok)
	assert.Equal(t, dummy.GetMaxHP(), dummy.GetHP(), "a dead player cannot act")
	assert.Equal(t, 0, e.TurnCount())
}

func TestNewReplacesDeadEnemy(t *testing.T) {
	hero := newHero(heroDef)
	dead := newDummy(1, gamedata.StatsDef{Health: 0})
	e := newTestEncounter(t, 3, hero, dead)

	require.NotSame(t, dead, e.Enemy())
	assert.False(t, e.Enemy().IsDead())
	assert.Equal(t, StateMain, e.State())
	assert.Equal(t, 0, e.Kills())
}

func TestPlayerDeathNamesTheAttacker(t *testing.T) {
	hero := newHero(gamedata.StatsDef{Health: 1, Speed: 5}) // 5 HP
	dummy := newDummy(1, gamedata.StatsDef{Health: 20, Speed: 20, Strength: 50})
	e := newTestEncounter(t, 13, hero, dummy)

	for i := 0; i < 50 && e.State() != StateDead; i++ {
		e.Step(ctx, Input{Intent: IntentAttack})
	}
	require.Equal(t, StateDead, e.State())
	assert.Contains(t, e.History(), "Hero has been slain by Dummy.")
}

func TestHistoryIsBounded(t *testing.T) {
	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 100, Speed: 5, Strength: 1})
	e := newTestEncounter(t, 2, hero, dummy, WithHistoryLimit(3))

	var last []string
	for i := 0; i < 10; i++ {
		_, last = e.Step(ctx, Input{Intent: IntentDefend})
		require.LessOrEqual(t, len(last), 3)
	}
	assert.Len(t, last, 3)

	last[0] = "mutated"
	assert.NotEqual(t, "mutated", e.History()[0], "History returns a copy")
}

func TestSameSeedReplaysEncounter(t *testing.T) {
	inputs := []Input{
		{Intent: IntentAttack},
		{Intent: IntentMagic, MoveIndex: 0},
		{Intent: IntentDefend},
		{Intent: IntentNone},
		{Intent: IntentAttack},
		{Intent: IntentAttack},
	}

	run := func() (*Encounter, []string) {
		e := newTestEncounter(t, 2024, newHero(heroDef), nil, WithHistoryLimit(100))
		for _, in := range inputs {
			e.Step(ctx, in)
		}
		return e, e.History()
	}

	a, historyA := run()
	b, historyB := run()

	assert.Equal(t, historyA, historyB)
	assert.Equal(t, a.Enemy().ID, b.Enemy().ID)
	assert.Equal(t, a.Player().GetHP(), b.Player().GetHP())
}

func TestStepRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	hero := newHero(heroDef)
	dummy := newDummy(1, gamedata.StatsDef{Health: 1, Speed: 5})
	e := newTestEncounter(t, 9, hero, dummy, WithTracer(provider.Tracer("test")))

	e.Step(ctx, Input{Intent: IntentAttack})

	names := map[string]int{}
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}
	assert.Equal(t, 1, names["encounter.step"])
	assert.Equal(t, 1, names["combat.turn"], "the dead enemy never acts")
	assert.Equal(t, 1, names["encounter.enemy_defeated"])
	assert.Equal(t, 1, names["combat.end_turn"])
}

func TestNewWithoutOptions(t *testing.T) {
	e := New(testCatalogs(t), newHero(heroDef), newDummy(1, dummyDef))

	ok, history := e.Step(ctx, Input{Intent: IntentDefend})
	assert.True(t, ok)
	assert.NotEmpty(t, history)
}
