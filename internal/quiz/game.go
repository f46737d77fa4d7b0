package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrGameClosed is returned by every operation after Close.
var ErrGameClosed = errors.New("game has been closed")

// Config configures a Game.
type Config struct {
	ID            string
	Questions     []Question
	Policy        TimerPolicy
	RecordHistory bool
	// Clock defaults to the real clock. Tests pass clockwork.NewFakeClock().
	Clock clockwork.Clock
	// Intn defaults to CryptoIntn.
	Intn Intn
}

// Game owns one Session and its countdown. Every event, whether from a
// player or from the countdown, is applied under the game's lock so the
// session only ever sees one mutation at a time.
type Game struct {
	id        string
	questions []Question
	policy    TimerPolicy
	clock     clockwork.Clock
	intn      Intn

	mu         sync.Mutex
	session    *Session
	countdown  *Countdown
	timerGen   uint64
	remaining  int
	lastActive time.Time
	subs       map[int]chan Snapshot
	nextSub    int
	closed     bool
}

// NewGame returns a game in the setup phase.
func NewGame(cfg Config) *Game {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	intn := cfg.Intn
	if intn == nil {
		intn = CryptoIntn
	}
	return &Game{
		id:         cfg.ID,
		questions:  cfg.Questions,
		policy:     cfg.Policy,
		clock:      clock,
		intn:       intn,
		session:    NewSession(cfg.RecordHistory),
		lastActive: clock.Now(),
		subs:       make(map[int]chan Snapshot),
	}
}

// ID returns the identifier the game was created with.
func (g *Game) ID() string {
	return g.id
}

// AddPlayer adds a player during setup.
func (g *Game) AddPlayer(name string) error {
	return g.apply(func(s *Session) error { return s.AddPlayer(name) })
}

// RemovePlayer removes the player at index during setup.
func (g *Game) RemovePlayer(index int) error {
	return g.apply(func(s *Session) error { return s.RemovePlayer(index) })
}

// Proceed moves from setup to difficulty selection.
func (g *Game) Proceed() error {
	return g.apply(func(s *Session) error { return s.Proceed() })
}

// BackToSetup returns from difficulty selection to setup.
func (g *Game) BackToSetup() error {
	return g.apply(func(s *Session) error { return s.BackToSetup() })
}

// Start builds a fresh pool for d and starts the first turn's countdown.
func (g *Game) Start(d Difficulty) error {
	err := g.apply(func(s *Session) error { return s.Start(d, g.questions, g.intn) })
	if err == nil {
		log.Info().Str("game", g.id).Str("difficulty", string(d)).Msg("game started")
	}
	return err
}

// Submit answers for the current player. turn must match Snapshot.Turn so a
// double-clicked or replayed form cannot answer the next player's turn;
// pass a negative turn to skip that check.
func (g *Game) Submit(turn int, option string) (bool, error) {
	var correct bool
	err := g.apply(func(s *Session) error {
		if turn >= 0 && s.Phase == PhasePlaying && turn != s.Turns {
			return ErrStaleTurn
		}
		var err error
		correct, err = s.Submit(option)
		return err
	})
	return correct, err
}

// PlayAgain discards the game and returns to player entry.
func (g *Game) PlayAgain() error {
	return g.apply(func(s *Session) error {
		s.Reset()
		return nil
	})
}

// Snapshot returns the current display state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// LastActive is the time of the most recent player action.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// Subscribe delivers a snapshot after every change. Only the latest
// snapshot is kept for a slow reader. The channel is closed by cancel or Close.
func (g *Game) Subscribe() (<-chan Snapshot, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan Snapshot, 1)
	if g.closed {
		close(ch)
		return ch, func() {}
	}
	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if sub, ok := g.subs[id]; ok {
			delete(g.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close stops the countdown and releases subscribers.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.stopCountdownLocked()
	for id, ch := range g.subs {
		delete(g.subs, id)
		close(ch)
	}
}

func (g *Game) apply(fn func(s *Session) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrGameClosed
	}
	g.lastActive = g.clock.Now()
	if err := fn(g.session); err != nil {
		return err
	}
	g.changedLocked()
	return nil
}

func (g *Game) changedLocked() {
	g.syncCountdownLocked()
	g.publishLocked()
}

// syncCountdownLocked cancels any running countdown and, while playing a
// timed tier, starts a fresh one for the current turn.
func (g *Game) syncCountdownLocked() {
	g.stopCountdownLocked()
	if g.session.Phase != PhasePlaying {
		return
	}
	d := g.policy.Duration(g.session.Difficulty)
	if d <= 0 {
		return
	}
	gen := g.timerGen
	g.remaining = wholeSeconds(d)
	g.countdown = StartCountdown(g.clock, d,
		func(remaining int) { g.tick(gen, remaining) },
		func() { g.expire(gen) },
	)
}

func (g *Game) stopCountdownLocked() {
	g.countdown.Stop()
	g.countdown = nil
	g.timerGen++
	g.remaining = 0
}

func (g *Game) tick(gen uint64, remaining int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || gen != g.timerGen {
		return
	}
	g.remaining = remaining
	g.publishLocked()
}

func (g *Game) expire(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || gen != g.timerGen {
		return
	}
	player, _ := g.session.CurrentPlayer()
	if err := g.session.Expire(); err != nil {
		log.Warn().Err(err).Str("game", g.id).Msg("countdown expired outside of play")
		return
	}
	log.Debug().Str("game", g.id).Str("player", player.Name).Msg("turn timed out")
	g.changedLocked()
}

func (g *Game) publishLocked() {
	snap := g.snapshotLocked()
	for _, ch := range g.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (g *Game) snapshotLocked() Snapshot {
	seconds := 0
	if g.session.Phase == PhasePlaying {
		seconds = g.policy.Seconds(g.session.Difficulty)
	}
	return newSnapshot(g.session, seconds, g.remaining)
}
