package main

import (
	"testing"
)

func testGameWithPlayers(nicknames ...string) *Game {
	g := newGame("12345", testClient("host"), defaultQuiz)
	for _, name := range nicknames {
		g.players = append(g.players, &Player{
			client:   testClient(name),
			Nickname: name,
		})
	}

	return g
}

func TestLeaderboard_StableOnTies(t *testing.T) {
	g := testGameWithPlayers("Ann", "Bo", "Cat")

	for i := 0; i < 3; i++ {
		board := g.leaderboardLocked()
		for j, want := range []string{"Ann", "Bo", "Cat"} {
			if board[j].Nickname != want {
				t.Fatalf("pass %d: expected %s at rank %d, got %s", i, want, j, board[j].Nickname)
			}
		}
	}
}

func TestLeaderboard_DescendingWithTiesInJoinOrder(t *testing.T) {
	g := testGameWithPlayers("Ann", "Bo", "Cat")
	g.players[1].Score = 200

	board := g.leaderboardLocked()

	want := []LeaderboardEntry{
		{Nickname: "Bo", Score: 200},
		{Nickname: "Ann", Score: 0},
		{Nickname: "Cat", Score: 0},
	}
	for i := range want {
		if board[i] != want[i] {
			t.Fatalf("board[%d] = %#v, want %#v", i, board[i], want[i])
		}
	}
}

func TestScoreRound_AwardsFlatPoints(t *testing.T) {
	g := testGameWithPlayers("Ann", "Bo", "Cat")
	g.questionIndex = 0
	g.phase = phaseQuestion

	correct := g.questions[0].CorrectAnswer
	g.answers["Ann"] = correct
	g.answers["Bo"] = (correct + 1) % len(g.questions[0].Options)
	// Cat never answered.

	results := g.scoreRoundLocked()

	if res := results.PlayerResults["Ann"]; !res.Correct || res.ScoreAdded != pointsPerCorrectAnswer {
		t.Fatalf("unexpected result for Ann: %#v", res)
	}
	if res := results.PlayerResults["Bo"]; res.Correct || res.ScoreAdded != 0 {
		t.Fatalf("unexpected result for Bo: %#v", res)
	}
	if _, ok := results.PlayerResults["Cat"]; ok {
		t.Fatalf("expected no result for a silent player")
	}

	if g.players[0].Score != pointsPerCorrectAnswer || g.players[1].Score != 0 || g.players[2].Score != 0 {
		t.Fatalf("unexpected cumulative scores: %d/%d/%d",
			g.players[0].Score, g.players[1].Score, g.players[2].Score)
	}
}

func TestRecordAnswer_Validation(t *testing.T) {
	g := testGameWithPlayers("Ann")
	g.questionIndex = 0
	g.phase = phaseQuestion

	if err := g.recordAnswerLocked("ghost", 0, 0); err != errUnauthorized {
		t.Fatalf("expected errUnauthorized, got %v", err)
	}
	if err := g.recordAnswerLocked("Ann", 1, 0); err != errInvalidState {
		t.Fatalf("expected errInvalidState for stale index, got %v", err)
	}
	if err := g.recordAnswerLocked("Ann", 0, 2); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := g.recordAnswerLocked("Ann", 0, 1); err != errAlreadyAnswered {
		t.Fatalf("expected errAlreadyAnswered, got %v", err)
	}
	if g.answers["Ann"] != 2 {
		t.Fatalf("second submission overwrote the ledger: %d", g.answers["Ann"])
	}

	g.phase = phaseResults
	if err := g.recordAnswerLocked("Ann", 0, 1); err != errInvalidState {
		t.Fatalf("expected errInvalidState outside the question phase, got %v", err)
	}
}

func TestAdvance_ResetsAnswersEachRound(t *testing.T) {
	g := testGameWithPlayers("Ann")
	g.questionIndex = 0
	g.phase = phaseQuestion
	g.answers["Ann"] = 1

	g.advanceLocked()

	if g.questionIndex != 1 || g.phase != phaseQuestion {
		t.Fatalf("unexpected state after advance: %s/%d", g.phase, g.questionIndex)
	}
	if len(g.answers) != 0 {
		t.Fatalf("answer ledger not cleared for the new round")
	}
}

func TestAdvance_PastLastQuestionFinishes(t *testing.T) {
	g := testGameWithPlayers("Ann")
	g.questionIndex = len(g.questions) - 1
	g.phase = phaseResults

	outbound := g.advanceLocked()

	if g.phase != phaseFinished {
		t.Fatalf("expected finished phase, got %s", g.phase)
	}

	// Host plus one player hear about it.
	if len(outbound) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(outbound))
	}
	if _, ok := outbound[0].msg.(GameOverMessage); !ok {
		t.Fatalf("expected game_over broadcast, got %T", outbound[0].msg)
	}
}

func TestRemovePlayer_DropsAnswer(t *testing.T) {
	g := testGameWithPlayers("Ann", "Bo")
	g.questionIndex = 0
	g.phase = phaseQuestion
	g.answers["Ann"] = 1
	g.answers["Bo"] = 2

	nickname, removed := g.removePlayerLocked("Ann")
	if !removed || nickname != "Ann" {
		t.Fatalf("expected to remove Ann, got %q/%v", nickname, removed)
	}

	if _, ok := g.answers["Ann"]; ok {
		t.Fatalf("removed player's answer still in the ledger")
	}
	if len(g.players) != 1 || g.players[0].Nickname != "Bo" {
		t.Fatalf("unexpected remaining players: %#v", g.players)
	}

	if _, removed := g.removePlayerLocked("Ann"); removed {
		t.Fatalf("second removal reported success")
	}
}
