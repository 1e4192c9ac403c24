package model

// WSMove is a move request as sent by clients, square names in algebraic form.
type WSMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WSClick is a single square click from the board UI.
type WSClick struct {
	Square string `json:"square"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type ClickAction string

const (
	ClickIgnored  ClickAction = "ignored"
	ClickSelected ClickAction = "selected"
	ClickMoved    ClickAction = "moved"
	ClickRejected ClickAction = "rejected"
)

// ClickResult says what a click did: nothing, a selection, or a move
// attempt that was committed or rejected.
type ClickResult struct {
	Action ClickAction `json:"action"`
	Move   *SimpleMove `json:"move,omitempty"`
}

// MoveResult is the verdict for one attempt.
type MoveResult struct {
	Legal bool       `json:"legal"`
	Move  SimpleMove `json:"move"`
}

// Selection is the chosen piece and where it stands. It lives from a
// selecting click until the next move attempt resolves.
type Selection struct {
	Piece    Piece    `json:"piece"`
	Position Position `json:"position"`
}
