package main

import (
	"sort"
	"sync"
	"time"
)

// Game phases. A game starts in the lobby, cycles between question and
// results while rounds are played, and ends in finished.
const (
	phaseLobby    = "lobby"
	phaseQuestion = "question"
	phaseResults  = "results"
	phaseFinished = "finished"
)

// Flat award per correct answer; no partial or time-weighted credit.
const pointsPerCorrectAnswer = 100

// Player holds the data we store server-side for one participant.
type Player struct {
	client   *Client
	Nickname string
	Score    int
}

// Game is one quiz session: a host, its players in join order, the
// shared question list, and the state of the current round. All fields
// are guarded by mu; methods with the Locked suffix expect mu held.
type Game struct {
	pin  string
	host *Client

	mu            sync.Mutex
	players       []*Player
	questions     []Question
	questionIndex int // -1 before the first question
	phase         string
	answers       map[string]int // client identity -> chosen option, current round only
	createdAt     time.Time
	lastActive    time.Time
}

func newGame(pin string, host *Client, questions []Question) *Game {
	now := time.Now()
	return &Game{
		pin:           pin,
		host:          host,
		questions:     questions,
		questionIndex: -1,
		phase:         phaseLobby,
		answers:       make(map[string]int),
		createdAt:     now,
		lastActive:    now,
	}
}

// envelope pairs an outbound message with its recipient, so broadcasts
// can be computed under a game's lock but sent after it is released.
type envelope struct {
	to  *Client
	msg any
}

func deliver(envelopes []envelope) {
	for _, e := range envelopes {
		e.to.enqueue(e.msg)
	}
}

// broadcastLocked addresses a message to the host and every player.
func (g *Game) broadcastLocked(msg any) []envelope {
	out := make([]envelope, 0, len(g.players)+1)
	out = append(out, envelope{to: g.host, msg: msg})
	for _, p := range g.players {
		out = append(out, envelope{to: p.client, msg: msg})
	}

	return out
}

func (g *Game) playerLocked(identity string) *Player {
	for _, p := range g.players {
		if p.client.identity == identity {
			return p
		}
	}

	return nil
}

func (g *Game) nicknamesLocked() []string {
	names := make([]string, 0, len(g.players))
	for _, p := range g.players {
		names = append(names, p.Nickname)
	}

	return names
}

// addPlayerLocked admits a new participant. Duplicate nicknames are
// allowed; only the lobby phase accepts joins.
func (g *Game) addPlayerLocked(c *Client, nickname string) error {
	if g.phase != phaseLobby {
		return errInvalidState
	}

	g.players = append(g.players, &Player{
		client:   c,
		Nickname: nickname,
	})
	g.lastActive = time.Now()

	return nil
}

// removePlayerLocked drops a participant and its answer for the
// current round, reporting the departed nickname.
func (g *Game) removePlayerLocked(identity string) (string, bool) {
	dst := g.players[:0]
	nickname := ""
	removed := false

	for _, p := range g.players {
		if p.client.identity == identity {
			nickname = p.Nickname
			removed = true
			continue
		}
		dst = append(dst, p)
	}
	g.players = dst

	if removed {
		delete(g.answers, identity)
		g.lastActive = time.Now()
	}

	return nickname, removed
}

// recordAnswerLocked validates and stores one player's answer for the
// current round.
func (g *Game) recordAnswerLocked(identity string, questionIndex, answerIndex int) error {
	if g.playerLocked(identity) == nil {
		return errUnauthorized
	}
	if g.phase != phaseQuestion || g.questionIndex != questionIndex {
		return errInvalidState
	}
	if _, answered := g.answers[identity]; answered {
		return errAlreadyAnswered
	}

	g.answers[identity] = answerIndex
	g.lastActive = time.Now()

	return nil
}

// leaderboardLocked ranks players by descending score. The sort is
// stable, so equal scores keep join order.
func (g *Game) leaderboardLocked() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(g.players))
	for _, p := range g.players {
		entries = append(entries, LeaderboardEntry{
			Nickname: p.Nickname,
			Score:    p.Score,
		})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Score > entries[b].Score
	})

	return entries
}

// scoreRoundLocked awards points for the round that just ended and
// builds the results broadcast.
func (g *Game) scoreRoundLocked() RoundResultsMessage {
	correct := g.questions[g.questionIndex].CorrectAnswer
	results := make(map[string]PlayerResult, len(g.answers))

	for _, p := range g.players {
		answer, ok := g.answers[p.client.identity]
		if !ok {
			continue
		}

		scoreAdded := 0
		if answer == correct {
			scoreAdded = pointsPerCorrectAnswer
		}
		p.Score += scoreAdded

		results[p.client.identity] = PlayerResult{
			Correct:    answer == correct,
			ScoreAdded: scoreAdded,
		}
	}

	return RoundResultsMessage{
		Type:          "show_round_results",
		CorrectAnswer: correct,
		PlayerResults: results,
		Leaderboard:   g.leaderboardLocked(),
	}
}

// advanceLocked moves the game to the next question, or finishes it
// when the quiz is exhausted.
func (g *Game) advanceLocked() []envelope {
	g.questionIndex++
	g.lastActive = time.Now()

	if g.questionIndex >= len(g.questions) {
		g.phase = phaseFinished

		return g.broadcastLocked(GameOverMessage{
			Type:        "game_over",
			Leaderboard: g.leaderboardLocked(),
		})
	}

	g.phase = phaseQuestion
	g.answers = make(map[string]int)

	q := g.questions[g.questionIndex]

	return g.broadcastLocked(QuestionMessage{
		Type:          "display_question",
		QuestionIndex: g.questionIndex,
		QuestionText:  q.Text,
		Options:       q.Options,
		QuestionTotal: len(g.questions),
	})
}
