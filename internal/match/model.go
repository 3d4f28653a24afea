// File: internal/match/model.go
package match

// Player is one seat of a recorded match.
type Player struct {
	Name      string `json:"name" binding:"required,max=100"`
	Commander string `json:"commander" binding:"required,max=200"`
	TurnOrder int    `json:"turnOrder" binding:"required,min=1,max=4"`
	Rank      int    `json:"rank" binding:"required,min=1,max=4"`
}

// SubmitMatchRequest is the body of POST /matches. Every field is optional.
type SubmitMatchRequest struct {
	Player1     *Player `json:"player1" binding:"omitempty"`
	Player2     *Player `json:"player2" binding:"omitempty"`
	Player3     *Player `json:"player3" binding:"omitempty"`
	Player4     *Player `json:"player4" binding:"omitempty"`
	TurnCount   *int    `json:"turnCount" binding:"omitempty,min=0"`
	ExtraNotes  *string `json:"extraNotes" binding:"omitempty,max=2000"`
	FirstKOTurn *int    `json:"firstKOTurn" binding:"omitempty,min=0"`
	TimeLength  *int    `json:"timeLength" binding:"omitempty,min=0"`
}

// Players returns the four seats in order; absent seats are nil.
func (r SubmitMatchRequest) Players() [4]*Player {
	return [4]*Player{r.Player1, r.Player2, r.Player3, r.Player4}
}
