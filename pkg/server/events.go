package server

// GameEventType labels the per-game events the server logs.
type GameEventType string

const (
	EventGameStarted   GameEventType = "GAME_STARTED"
	EventCardRevealed  GameEventType = "CARD_REVEALED"
	EventPurchase      GameEventType = "PURCHASE"
	EventTake          GameEventType = "TAKE"
	EventWild          GameEventType = "WILD"
	EventDisconnect    GameEventType = "DISCONNECT"
	EventReconnect     GameEventType = "RECONNECT"
	EventProtocolError GameEventType = "PROTOCOL_ERROR"
	EventGameEnded     GameEventType = "GAME_ENDED"
)

// endReason says why a game's turn loop stopped.
type endReason int

const (
	// endNormal covers the win threshold being reached and the board
	// running out of cards.
	endNormal endReason = iota
	// endDisconnect means a seat closed and did not reconnect in time.
	endDisconnect
	// endProtocol means a seat sent two bad messages in a row.
	endProtocol
)
