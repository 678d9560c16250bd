package domain

import "errors"

// Error kinds surfaced by the codec, engine, registry, and hub. Clients
// never see these directly — they're mapped to Reject/Disconnect reasons
// at the transport boundary.
var (
	ErrFrameTooLarge       = errors.New("frame too large")
	ErrDecodeError         = errors.New("decode error")
	ErrUnexpectedFrameKind = errors.New("unexpected frame kind")
	ErrProtocolViolation   = errors.New("protocol violation")
	ErrSessionBusy         = errors.New("session busy")
	ErrUnknownSession      = errors.New("unknown session")
	ErrServerFull          = errors.New("server full")
	ErrSocketError         = errors.New("socket error")
	ErrTimeout             = errors.New("timeout")
	ErrIllegalMove         = errors.New("illegal move")
	ErrNotYourPiece        = errors.New("not your piece")
	ErrIllegalDestination  = errors.New("illegal destination")
)
