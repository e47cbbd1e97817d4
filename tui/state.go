package tui

type state int

const (
	startingState state = iota
	playingState
	errorState
)
