/*
 * file: message.go
 * package: codec
 * description:
 *     The wire message schema shared by both transports, and the CBOR
 *     encode/decode pair the framing layers wrap. The CBOR library itself
 *     is treated as a black-box bytes<->value mapping; this file only
 *     defines the schema and the type discriminator dance.
 */
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/juan10024/sternhalma-server/internal/core/domain"
)

// envelope is the on-the-wire shape every message shares: a string type
// discriminator plus the remaining fields flattened alongside it. CBOR maps
// don't support Go struct embedding with a shared discriminator cleanly, so
// encode/decode go through this single map-like struct instead of one
// struct per message type.
type envelope struct {
	Type        string      `cbor:"type"`
	SessionID   string      `cbor:"session_id,omitempty"`
	Reason      string      `cbor:"reason,omitempty"`
	MovementIdx *uint       `cbor:"movement_index,omitempty"`
	Movements   [][2][2]int `cbor:"movements,omitempty"`
	Player      string      `cbor:"player,omitempty"`
	Movement    *[2][2]int  `cbor:"movement,omitempty"`
	Scores      []uint      `cbor:"scores,omitempty"`
	Result      *resultEnv  `cbor:"result,omitempty"`
}

type resultEnv struct {
	Type       string `cbor:"type"`
	Winner     string `cbor:"winner,omitempty"`
	TotalTurns uint   `cbor:"total_turns"`
	Scores     []uint `cbor:"scores"`
}

// Message is the decoded, strongly-typed form any layer above the codec
// works with.
type Message interface{ messageType() string }

type Hello struct{}

func (Hello) messageType() string { return "hello" }

type Reconnect struct{ SessionID domain.SessionId }

func (Reconnect) messageType() string { return "reconnect" }

type ChoiceMsg struct{ MovementIndex uint }

func (ChoiceMsg) messageType() string { return "choice" }

type Welcome struct {
	SessionID domain.SessionId
	Player    domain.Player
}

func (Welcome) messageType() string { return "welcome" }

type Reject struct{ Reason string }

func (Reject) messageType() string { return "reject" }

type DisconnectMsg struct{}

func (DisconnectMsg) messageType() string { return "disconnect" }

type TurnMsg struct{ Movements []domain.Movement }

func (TurnMsg) messageType() string { return "turn" }

type MovementMsg struct {
	Player   domain.Player
	Movement domain.Movement
	Scores   [2]int
}

func (MovementMsg) messageType() string { return "movement" }

type GameFinishedMsg struct{ Result domain.GameResult }

func (GameFinishedMsg) messageType() string { return "game_finished" }

func hexPair(m domain.Movement) [2][2]int {
	return [2][2]int{{m.Start.Q, m.Start.R}, {m.End.Q, m.End.R}}
}

func pairToMovement(p [2][2]int) domain.Movement {
	return domain.Movement{
		Start: domain.HexIdx{Q: p[0][0], R: p[0][1]},
		End:   domain.HexIdx{Q: p[1][0], R: p[1][1]},
	}
}

/*
 * Encode serializes a Message to its canonical CBOR byte representation.
 *
 * Parameters:
 *   - msg (Message): the message to encode.
 *
 * Returns:
 *   - []byte: the CBOR payload.
 *   - error: if msg is an unrecognized type or the encoder fails.
 */
func Encode(msg Message) ([]byte, error) {
	env := envelope{Type: msg.messageType()}

	switch m := msg.(type) {
	case Hello:
	case Reconnect:
		env.SessionID = uuid.UUID(m.SessionID).String()
	case ChoiceMsg:
		idx := m.MovementIndex
		env.MovementIdx = &idx
	case Welcome:
		env.SessionID = uuid.UUID(m.SessionID).String()
		env.Player = m.Player.String()
	case Reject:
		env.Reason = m.Reason
	case DisconnectMsg:
	case TurnMsg:
		env.Movements = make([][2][2]int, len(m.Movements))
		for i, mv := range m.Movements {
			env.Movements[i] = hexPair(mv)
		}
	case MovementMsg:
		env.Player = m.Player.String()
		pair := hexPair(m.Movement)
		env.Movement = &pair
		env.Scores = []uint{uint(m.Scores[0]), uint(m.Scores[1])}
	case GameFinishedMsg:
		env.Result = encodeResult(m.Result)
	default:
		return nil, fmt.Errorf("%w: unknown message type %T", domain.ErrDecodeError, msg)
	}

	return cbor.Marshal(env)
}

func encodeResult(r domain.GameResult) *resultEnv {
	out := &resultEnv{
		TotalTurns: r.TotalTurns,
		Scores:     []uint{uint(r.Scores[0]), uint(r.Scores[1])},
	}
	switch r.Kind {
	case domain.ResultFinished:
		out.Type = "finished"
		out.Winner = r.Winner.String()
	case domain.ResultMaxTurns:
		out.Type = "max_turns"
	case domain.ResultForfeit:
		out.Type = "forfeit"
		out.Winner = r.Winner.String()
	}
	return out
}

func decodeResult(r *resultEnv) (domain.GameResult, error) {
	if r == nil {
		return domain.GameResult{}, fmt.Errorf("%w: missing result", domain.ErrDecodeError)
	}
	var scores [2]int
	for i, s := range r.Scores {
		if i < 2 {
			scores[i] = int(s)
		}
	}
	switch r.Type {
	case "finished":
		winner, ok := domain.ParsePlayer(r.Winner)
		if !ok {
			return domain.GameResult{}, fmt.Errorf("%w: bad winner %q", domain.ErrDecodeError, r.Winner)
		}
		return domain.Finished(winner, r.TotalTurns, scores), nil
	case "max_turns":
		return domain.MaxTurns(r.TotalTurns, scores), nil
	case "forfeit":
		winner, ok := domain.ParsePlayer(r.Winner)
		if !ok {
			return domain.GameResult{}, fmt.Errorf("%w: bad winner %q", domain.ErrDecodeError, r.Winner)
		}
		return domain.Forfeit(winner, r.TotalTurns, scores), nil
	default:
		return domain.GameResult{}, fmt.Errorf("%w: unknown result type %q", domain.ErrDecodeError, r.Type)
	}
}

/*
 * Decode parses a CBOR payload into its strongly-typed Message.
 *
 * Returns:
 *   - Message: the decoded message.
 *   - error: domain.ErrDecodeError (wrapped) on malformed, truncated, or
 *     unrecognized payloads.
 */
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeError, err)
	}

	switch env.Type {
	case "hello":
		return Hello{}, nil
	case "reconnect":
		id, err := uuid.Parse(env.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad session_id: %v", domain.ErrDecodeError, err)
		}
		return Reconnect{SessionID: domain.SessionId(id)}, nil
	case "choice":
		if env.MovementIdx == nil {
			return nil, fmt.Errorf("%w: missing movement_index", domain.ErrDecodeError)
		}
		return ChoiceMsg{MovementIndex: *env.MovementIdx}, nil
	case "welcome":
		id, err := uuid.Parse(env.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad session_id: %v", domain.ErrDecodeError, err)
		}
		player, ok := domain.ParsePlayer(env.Player)
		if !ok {
			return nil, fmt.Errorf("%w: bad player %q", domain.ErrDecodeError, env.Player)
		}
		return Welcome{SessionID: domain.SessionId(id), Player: player}, nil
	case "reject":
		return Reject{Reason: env.Reason}, nil
	case "disconnect":
		return DisconnectMsg{}, nil
	case "turn":
		movements := make([]domain.Movement, len(env.Movements))
		for i, p := range env.Movements {
			movements[i] = pairToMovement(p)
		}
		return TurnMsg{Movements: movements}, nil
	case "movement":
		if env.Movement == nil || len(env.Scores) < 2 {
			return nil, fmt.Errorf("%w: incomplete movement message", domain.ErrDecodeError)
		}
		player, ok := domain.ParsePlayer(env.Player)
		if !ok {
			return nil, fmt.Errorf("%w: bad player %q", domain.ErrDecodeError, env.Player)
		}
		return MovementMsg{
			Player:   player,
			Movement: pairToMovement(*env.Movement),
			Scores:   [2]int{int(env.Scores[0]), int(env.Scores[1])},
		}, nil
	case "game_finished":
		result, err := decodeResult(env.Result)
		if err != nil {
			return nil, err
		}
		return GameFinishedMsg{Result: result}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrDecodeError, env.Type)
	}
}
