package registry

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomExists        = errors.New("room already exists")
	ErrRoomFull          = errors.New("room full")
	ErrInvalidTransition = errors.New("invalid transition")
)
