package main

// Messages coming from clients
type ClientMessage struct {
	Type          string `json:"type"`               // "create_game", "join_game", "start_game", "next_question", "submit_answer"
	Pin           string `json:"pin,omitempty"`      // all but create_game
	Nickname      string `json:"nickname,omitempty"` // join_game
	AnswerIndex   int    `json:"answer_index"`       // submit_answer
	QuestionIndex int    `json:"question_index"`     // submit_answer
}

// GameCreatedMessage is sent to the creator with the new game pin.
type GameCreatedMessage struct {
	Type string `json:"type"` // "game_created"
	Pin  string `json:"pin"`
}

// JoinedMessage confirms a successful join to the joining player only.
type JoinedMessage struct {
	Type     string `json:"type"` // "joined_successfully"
	Nickname string `json:"nickname"`
}

// Sent to a single client when a join is rejected
type JoinErrorMessage struct {
	Type    string `json:"type"`    // "join_error"
	Message string `json:"message"` // user-facing text
}

// PlayerListMessage keeps the host's lobby view current.
type PlayerListMessage struct {
	Type    string   `json:"type"` // "update_player_list"
	Players []string `json:"players"`
}

// PlayerLeftMessage tells the host which player departed.
type PlayerLeftMessage struct {
	Type     string `json:"type"` // "player_left"
	Nickname string `json:"nickname"`
}

// QuestionMessage broadcasts the current question to the whole game.
type QuestionMessage struct {
	Type          string   `json:"type"` // "display_question"
	QuestionIndex int      `json:"question_index"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	QuestionTotal int      `json:"question_total"`
}

// AnswerReceivedMessage acknowledges a recorded answer to the submitter only.
type AnswerReceivedMessage struct {
	Type          string `json:"type"` // "answer_received"
	QuestionIndex int    `json:"question_index"`
}

// Sent to a single client when an answer is rejected
type AnswerErrorMessage struct {
	Type    string `json:"type"`    // "answer_error"
	Message string `json:"message"` // user-facing text
}

// PlayerResult is one player's outcome for a single round.
type PlayerResult struct {
	Correct    bool `json:"correct"`
	ScoreAdded int  `json:"score_added"`
}

// LeaderboardEntry is one row of the ranked standings.
type LeaderboardEntry struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// RoundResultsMessage broadcasts the outcome of the round that just ended.
type RoundResultsMessage struct {
	Type          string                  `json:"type"` // "show_round_results"
	CorrectAnswer int                     `json:"correct_answer"`
	PlayerResults map[string]PlayerResult `json:"player_results"` // keyed by client identity
	Leaderboard   []LeaderboardEntry      `json:"leaderboard"`
}

// GameOverMessage broadcasts the final standings.
type GameOverMessage struct {
	Type        string             `json:"type"` // "game_over"
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// GameClosedMessage broadcasts that the game has been torn down.
type GameClosedMessage struct {
	Type    string `json:"type"`    // "game_closed"
	Message string `json:"message"` // user-facing text
}
