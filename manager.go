package main

import (
	"crypto/rand"
	"sync"
	"time"
)

type role int

const (
	roleHost role = iota
	rolePlayer
)

// binding records which game a connected identity belongs to, and as
// what. Identities that never created or joined a game have no entry.
type binding struct {
	role role
	pin  string
}

// GameManager owns the set of live games, keyed by pin, plus a reverse
// index from client identity to game. Lock order is always gm.mu
// before any Game's mu; broadcasts are sent with no locks held.
type GameManager struct {
	cfg       *Config
	questions []Question

	mu       sync.Mutex
	games    map[string]*Game
	bindings map[string]binding
}

func newGameManager(cfg *Config, questions []Question) *GameManager {
	gm := &GameManager{
		cfg:       cfg,
		questions: questions,
		games:     make(map[string]*Game),
		bindings:  make(map[string]binding),
	}

	if cfg.sessionTimeout > 0 {
		go gm.reaperLoop()
	}

	return gm
}

// newPinLocked generates a crypto-random numeric pin that doesn't
// collide with an existing game. Assumes gm.mu is held.
func (gm *GameManager) newPinLocked() string {
	const digits = "0123456789"

	for {
		buf := make([]byte, gm.cfg.pinLength)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		out := make([]byte, gm.cfg.pinLength)
		for i := range out {
			out[i] = digits[int(buf[i])%len(digits)]
		}
		pin := string(out)

		if _, exists := gm.games[pin]; !exists {
			return pin
		}
	}
}

// lookup returns the live game for a pin, if any.
func (gm *GameManager) lookup(pin string) (*Game, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	g, ok := gm.games[pin]

	return g, ok
}

// createGame allocates a fresh pin and a new lobby-phase game hosted
// by the requesting client. An identity already bound to a game may
// not create another; the request is dropped.
func (gm *GameManager) createGame(c *Client) {
	gm.mu.Lock()

	if b, ok := gm.bindings[c.identity]; ok {
		gm.mu.Unlock()
		logf(gm.cfg, "GAMES: Client %s already bound to game %s, ignoring create", c.identity, b.pin)

		return
	}

	pin := gm.newPinLocked()
	gm.games[pin] = newGame(pin, c, gm.questions)
	gm.bindings[c.identity] = binding{role: roleHost, pin: pin}
	gm.mu.Unlock()

	logf(gm.cfg, "GAMES: Game %s created by %s", pin, c.identity)

	c.enqueue(GameCreatedMessage{
		Type: "game_created",
		Pin:  pin,
	})
}

// joinGame admits a player into a lobby-phase game, confirming to the
// player and refreshing the host's player list.
func (gm *GameManager) joinGame(c *Client, pin, nickname string) {
	if nickname == "" {
		nickname = "Anonymous"
	}

	gm.mu.Lock()

	if _, ok := gm.bindings[c.identity]; ok {
		gm.mu.Unlock()
		c.enqueue(JoinErrorMessage{
			Type:    "join_error",
			Message: joinErrorText(errAlreadyBound),
		})

		return
	}

	g, ok := gm.games[pin]
	if !ok {
		gm.mu.Unlock()
		c.enqueue(JoinErrorMessage{
			Type:    "join_error",
			Message: joinErrorText(errGameNotFound),
		})

		return
	}

	g.mu.Lock()
	if err := g.addPlayerLocked(c, nickname); err != nil {
		g.mu.Unlock()
		gm.mu.Unlock()
		c.enqueue(JoinErrorMessage{
			Type:    "join_error",
			Message: joinErrorText(err),
		})

		return
	}
	gm.bindings[c.identity] = binding{role: rolePlayer, pin: pin}
	names := g.nicknamesLocked()
	host := g.host
	g.mu.Unlock()
	gm.mu.Unlock()

	logf(gm.cfg, "GAMES: Player %q joined game %s", nickname, pin)

	c.enqueue(JoinedMessage{
		Type:     "joined_successfully",
		Nickname: nickname,
	})
	host.enqueue(PlayerListMessage{
		Type:    "update_player_list",
		Players: names,
	})
}

// startGame begins the first round. Host-only, lobby-only; anything
// else is a logged no-op.
func (gm *GameManager) startGame(c *Client, pin string) {
	g, ok := gm.lookup(pin)
	if !ok {
		logf(gm.cfg, "GAMES: Start attempt for unknown game %s", pin)

		return
	}

	g.mu.Lock()
	if g.host.identity != c.identity {
		g.mu.Unlock()
		logf(gm.cfg, "GAMES: Unauthorized start attempt for game %s by %s", pin, c.identity)

		return
	}
	if g.phase != phaseLobby {
		g.mu.Unlock()
		logf(gm.cfg, "GAMES: Game %s already started or finished", pin)

		return
	}

	g.questionIndex = -1
	outbound := g.advanceLocked()
	g.mu.Unlock()

	logf(gm.cfg, "GAMES: Starting game %s", pin)
	deliver(outbound)
}

// nextQuestion ends the current round: scores are awarded, results are
// broadcast, and after the configured pause the next question (or the
// final leaderboard) goes out. The pause holds no locks and suspends
// only this game's advance; a racing second advance is rejected by the
// phase gate.
func (gm *GameManager) nextQuestion(c *Client, pin string) {
	g, ok := gm.lookup(pin)
	if !ok {
		logf(gm.cfg, "GAMES: Advance attempt for unknown game %s", pin)

		return
	}

	g.mu.Lock()
	if g.host.identity != c.identity {
		g.mu.Unlock()
		logf(gm.cfg, "GAMES: Unauthorized advance attempt for game %s by %s", pin, c.identity)

		return
	}
	if g.phase != phaseQuestion {
		phase := g.phase
		g.mu.Unlock()
		logf(gm.cfg, "GAMES: Advance ignored for game %s in phase %s", pin, phase)

		return
	}

	results := g.scoreRoundLocked()
	g.phase = phaseResults
	g.lastActive = time.Now()
	index := g.questionIndex
	outbound := g.broadcastLocked(results)
	g.mu.Unlock()

	logf(gm.cfg, "GAMES: Results for question %d sent for game %s", index, pin)
	deliver(outbound)

	time.AfterFunc(gm.cfg.resultsDelay, func() {
		gm.advanceRound(pin)
	})
}

// advanceRound runs once the results pause elapses. The game may have
// been destroyed in the meantime, in which case there is nothing to do.
func (gm *GameManager) advanceRound(pin string) {
	g, ok := gm.lookup(pin)
	if !ok {
		return
	}

	g.mu.Lock()
	if g.phase != phaseResults {
		g.mu.Unlock()

		return
	}

	outbound := g.advanceLocked()
	index := g.questionIndex
	finished := g.phase == phaseFinished
	g.mu.Unlock()

	if finished {
		logf(gm.cfg, "GAMES: Game %s finished", pin)
	} else {
		logf(gm.cfg, "GAMES: Sending question %d for game %s", index, pin)
	}
	deliver(outbound)
}

// submitAnswer records a player's answer for the current round,
// acknowledging to the submitter only. Rejections go back as
// answer_error and change no state.
func (gm *GameManager) submitAnswer(c *Client, pin string, questionIndex, answerIndex int) {
	g, ok := gm.lookup(pin)
	if !ok {
		c.enqueue(AnswerErrorMessage{
			Type:    "answer_error",
			Message: answerErrorText(errGameNotFound),
		})

		return
	}

	g.mu.Lock()
	err := g.recordAnswerLocked(c.identity, questionIndex, answerIndex)
	g.mu.Unlock()

	if err != nil {
		c.enqueue(AnswerErrorMessage{
			Type:    "answer_error",
			Message: answerErrorText(err),
		})

		return
	}

	logf(gm.cfg, "GAMES: Client %s answered question %d in game %s with %d", c.identity, questionIndex, pin, answerIndex)

	c.enqueue(AnswerReceivedMessage{
		Type:          "answer_received",
		QuestionIndex: questionIndex,
	})
}

// handleDisconnect resolves what a dropped connection was: the host of
// a game (tear it down), a player (remove it and tell the host), or
// neither (no-op).
func (gm *GameManager) handleDisconnect(c *Client) {
	gm.mu.Lock()

	b, ok := gm.bindings[c.identity]
	if !ok {
		gm.mu.Unlock()

		return
	}
	delete(gm.bindings, c.identity)

	g, ok := gm.games[b.pin]
	if !ok {
		gm.mu.Unlock()

		return
	}

	switch b.role {
	case roleHost:
		outbound := gm.destroyGameLocked(g, "Host disconnected, game closed.")
		gm.mu.Unlock()

		logf(gm.cfg, "GAMES: Host disconnected, closing game %s", b.pin)
		deliver(outbound)

	case rolePlayer:
		g.mu.Lock()
		nickname, removed := g.removePlayerLocked(c.identity)
		names := g.nicknamesLocked()
		host := g.host
		g.mu.Unlock()
		gm.mu.Unlock()

		if !removed {
			return
		}

		logf(gm.cfg, "GAMES: Player %q disconnected from game %s", nickname, b.pin)

		host.enqueue(PlayerListMessage{
			Type:    "update_player_list",
			Players: names,
		})
		host.enqueue(PlayerLeftMessage{
			Type:     "player_left",
			Nickname: nickname,
		})
	}
}

// destroyGameLocked removes a game and every binding that pointed at
// it. Assumes gm.mu is held; the game_closed broadcast is returned for
// delivery after the locks are released. Sends to identities that are
// already gone are dropped by their pumps.
func (gm *GameManager) destroyGameLocked(g *Game, reason string) []envelope {
	delete(gm.games, g.pin)

	g.mu.Lock()
	defer g.mu.Unlock()

	delete(gm.bindings, g.host.identity)
	for _, p := range g.players {
		delete(gm.bindings, p.client.identity)
	}

	return g.broadcastLocked(GameClosedMessage{
		Type:    "game_closed",
		Message: reason,
	})
}

// reaperLoop periodically destroys games that have been idle longer
// than the session timeout. Finished games leave the registry this way.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.cfg.sessionTimeout)

		var outbound []envelope

		gm.mu.Lock()
		for pin, g := range gm.games {
			g.mu.Lock()
			last := g.lastActive
			g.mu.Unlock()

			if last.Before(cutoff) {
				logf(gm.cfg, "GAMES: Reaping idle game %s", pin)
				outbound = append(outbound, gm.destroyGameLocked(g, "Game closed due to inactivity.")...)
			}
		}
		gm.mu.Unlock()

		deliver(outbound)
	}
}
