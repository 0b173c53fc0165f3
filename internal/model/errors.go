package model

import "errors"

var (
	ErrNotOwner      = errors.New("player does not own this game")
	ErrNotAuthorized = errors.New("not authorized to join this game")
)
