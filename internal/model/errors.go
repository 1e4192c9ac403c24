package model

import "errors"

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotAuthorized = errors.New("not authorized to join this game")
	ErrPlayerInQueue = errors.New("player already in queue")
)
