package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchSettled MsgKind = iota
	MsgStatusExpired
	MsgLinkOpened
	MsgPermalinkCopied
)

type searchSettled struct {
	seq   int
	value string
}

type actionResult struct {
	target string
	err    error
}

// searchSettledMsg is the constructor for [MsgSearchSettled]; seq identifies the keystroke that scheduled it.
func searchSettledMsg(seq int, value string) Msg {
	return Msg{kind: MsgSearchSettled, data: searchSettled{seq, value}}
}

// statusExpiredMsg is the constructor for [MsgStatusExpired]
func statusExpiredMsg(seq int) Msg {
	return Msg{kind: MsgStatusExpired, data: seq}
}

// linkOpenedMsg is the constructor for [MsgLinkOpened]
func linkOpenedMsg(link string, err error) Msg {
	return Msg{kind: MsgLinkOpened, data: actionResult{link, err}}
}

// permalinkCopiedMsg is the constructor for [MsgPermalinkCopied]
func permalinkCopiedMsg(url string, err error) Msg {
	return Msg{kind: MsgPermalinkCopied, data: actionResult{url, err}}
}
