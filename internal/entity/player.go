package entity

// Player is a browser session attached to a game.
type Player struct {
	SessionKey string    `json:"session_key"`
	GameID     string    `json:"game_id"`
	Num        PlayerNum `json:"player_num"`
}

func (that *Player) IsSpectator() bool {
	return !that.Num.IsPlayer()
}
