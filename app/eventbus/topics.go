package eventbus

import "time"

// TopicRoundCompleted carries RoundCompletedPayload once a round is saved.
const TopicRoundCompleted = "golfstats.round.completed"

// RoundCompletedPayload summarises a finished round for subscribers.
type RoundCompletedPayload struct {
	RoundID     string    `json:"round_id"`
	PlayerID    string    `json:"player_id"`
	CourseName  string    `json:"course_name"`
	LoopName    string    `json:"loop_name"`
	TeeColor    string    `json:"tee_color"`
	HolesPlayed int       `json:"holes_played"`
	TotalScore  int       `json:"total_score"`
	ToPar       int       `json:"to_par"`
	Stableford  *int      `json:"stableford,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
