package domain

import "encoding/json"

// EventType names a websocket event. The set is closed: the dispatch
// layer rejects anything outside it, so a typo in a client event name
// surfaces as an ERROR response instead of a silent no-op.
type EventType string

const (
	// Client -> server
	EventCreateRoom       EventType = "CREATE_ROOM"
	EventJoinRoom         EventType = "JOIN_ROOM"
	EventSendRoomMessage  EventType = "SEND_ROOM_MESSAGE"
	EventStartGame        EventType = "START_GAME"
	EventGetPlayersInRoom EventType = "GET_PLAYERS_IN_ROOM"
	EventSendingStats     EventType = "SENDING_STATS"

	// Server -> client
	EventRooms       EventType = "ROOMS"        // room list snapshot
	EventUsers       EventType = "USERS"        // global user list snapshot
	EventJoinedRoom  EventType = "JOINED_ROOM"  // join acknowledgment
	EventRoomMessage EventType = "ROOM_MESSAGE" // chat relay
	EventGameStarted EventType = "GAME_STARTED" // round begins
	EventGameWords   EventType = "GAME_WORDS"   // race text for the round
	EventSendPlayers EventType = "SEND_PLAYERS" // players-in-room snapshot
	EventGameResults EventType = "GAME_RESULTS" // aggregated stats on completion
	EventError       EventType = "ERROR"
)

// Event is the wire envelope for both directions
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an event with a marshaled payload.
// Payloads are plain structs defined below; marshaling them cannot fail.
func NewEvent(t EventType, payload interface{}) Event {
	data, _ := json.Marshal(payload)
	return Event{Type: t, Payload: data}
}

// Encode serializes the full envelope for the transport
func (e Event) Encode() []byte {
	data, _ := json.Marshal(e)
	return data
}

// ==== Client payloads ====

// CreateRoomPayload carries the requested room name
type CreateRoomPayload struct {
	RoomName string `json:"roomName"`
}

// JoinRoomPayload carries the room capability identifier
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// RoomMessagePayload is an inbound chat message for a room
type RoomMessagePayload struct {
	RoomID   string `json:"roomId"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// StartGamePayload requests a new round in a room
type StartGamePayload struct {
	RoomID string `json:"roomId"`
}

// PlayersInRoomPayload requests the member snapshot of a room
type PlayersInRoomPayload struct {
	RoomID string `json:"roomId"`
}

// StatsPayload is a participant's self-reported result for the round
type StatsPayload struct {
	RoomID   string  `json:"roomId"`
	Username string  `json:"username"`
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
}

// ==== Server payloads ====

// RoomsPayload is the room list snapshot (roomId -> name)
type RoomsPayload struct {
	Rooms map[string]string `json:"rooms"`
}

// UsersPayload is the global connected-user snapshot
type UsersPayload struct {
	Users []Identity `json:"users"`
}

// JoinedRoomPayload acknowledges room membership
type JoinedRoomPayload struct {
	RoomID string `json:"roomId"`
}

// RoomMessageOut is the relayed chat message with server-stamped time (HH:MM)
type RoomMessageOut struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Time     string `json:"time"`
}

// GameWordsPayload carries the generated race text for a round.
// Words is the ordered token list, Text the space-joined display string.
type GameWordsPayload struct {
	Words []string `json:"words"`
	Text  string   `json:"text"`
}

// SendPlayersPayload is the members-of-room snapshot
type SendPlayersPayload struct {
	RoomID  string     `json:"roomId"`
	Players []Identity `json:"players"`
}

// PlayerResult is one participant's aggregated stats entry
type PlayerResult struct {
	Username string  `json:"username"`
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
}

// GameResultsPayload is the full results list broadcast on round completion
type GameResultsPayload struct {
	RoomID  string         `json:"roomId"`
	Results []PlayerResult `json:"results"`
}

// ErrorPayload is unicast back to a connection whose event was rejected
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
