package game

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/tmgasek/typing-game-server/internal/domain"
)

// Service owns every mutation of the room table and the per-room game
// sessions. Inbound events arrive via Dispatch from the connection read
// pumps; outbound events leave through the injected Broadcaster. The
// transport never touches registry state and the service never touches
// connections.
type Service struct {
	registry  *Registry
	gateway   Broadcaster
	words     WordSource
	wordCount int
}

// NewService wires the coordination core
func NewService(registry *Registry, gateway Broadcaster, words WordSource, wordCount int) *Service {
	if wordCount <= 0 {
		wordCount = domain.DefaultWordCount
	}
	return &Service{
		registry:  registry,
		gateway:   gateway,
		words:     words,
		wordCount: wordCount,
	}
}

// Registry exposes the room table for the HTTP front door
func (s *Service) Registry() *Registry {
	return s.registry
}

// Dispatch routes one inbound event from a connection. Errors are
// logged and unicast back to the sender as ERROR events; a malformed
// event never crashes the process.
func (s *Service) Dispatch(from domain.Identity, e domain.Event) {
	var err error

	switch e.Type {
	case domain.EventCreateRoom:
		var p domain.CreateRoomPayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			s.CreateRoom(from, p.RoomName)
		}

	case domain.EventJoinRoom:
		var p domain.JoinRoomPayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			err = s.JoinRoom(from, p.RoomID)
		}

	case domain.EventSendRoomMessage:
		var p domain.RoomMessagePayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			err = s.RoomMessage(from, p)
		}

	case domain.EventStartGame:
		var p domain.StartGamePayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			err = s.StartGame(from, p.RoomID)
		}

	case domain.EventGetPlayersInRoom:
		var p domain.PlayersInRoomPayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			err = s.PlayersInRoom(from, p.RoomID)
		}

	case domain.EventSendingStats:
		var p domain.StatsPayload
		if err = json.Unmarshal(e.Payload, &p); err == nil {
			err = s.SubmitStats(from, p)
		}

	default:
		log.Printf("unknown event %q from %s", e.Type, from.ID)
		s.gateway.Unicast(from.ID, domain.NewEvent(domain.EventError, domain.ErrorPayload{
			Code:    "UNKNOWN_EVENT",
			Message: "unrecognized event type",
		}))
		return
	}

	if err != nil {
		log.Printf("event %s from %s rejected: %v", e.Type, from.ID, err)
		s.gateway.Unicast(from.ID, domain.NewEvent(domain.EventError, domain.ErrorPayload{
			Code:    domain.ErrorCode(err),
			Message: err.Error(),
		}))
	}
}

// Connected runs the post-handshake sequence: the new connection gets
// the current room list snapshot.
func (s *Service) Connected(id domain.Identity) {
	log.Printf("client connected: %s (%s)", id.ID, id.Username)
	s.gateway.Unicast(id.ID, domain.NewEvent(domain.EventRooms, domain.RoomsPayload{
		Rooms: s.registry.List(),
	}))
}

// CreateRoom allocates a room, makes the creator its first member, and
// announces the updated room list. The creator is excluded from the
// broadcast and instead receives the list directly, followed by the
// join acknowledgment, in that order.
func (s *Service) CreateRoom(creator domain.Identity, roomName string) string {
	room := s.registry.Create(roomName)

	room.mu.Lock()
	room.members[creator.ID] = creator.Username
	room.mu.Unlock()

	log.Printf("room %s (%q) created by %s", room.ID, roomName, creator.Username)

	roomsEvent := domain.NewEvent(domain.EventRooms, domain.RoomsPayload{Rooms: s.registry.List()})
	s.gateway.Broadcast(creator.ID, roomsEvent)
	s.gateway.Unicast(creator.ID, roomsEvent)
	s.gateway.Unicast(creator.ID, domain.NewEvent(domain.EventJoinedRoom, domain.JoinedRoomPayload{
		RoomID: room.ID,
	}))

	return room.ID
}

// JoinRoom adds the connection to the room's member set. Joining twice
// is a no-op; a missing room is an error surfaced to the caller.
func (s *Service) JoinRoom(id domain.Identity, roomID string) error {
	room := s.registry.Get(roomID)
	if room == nil {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	room.members[id.ID] = id.Username
	replay := room.history.All()
	room.mu.Unlock()

	s.gateway.Unicast(id.ID, domain.NewEvent(domain.EventJoinedRoom, domain.JoinedRoomPayload{
		RoomID: roomID,
	}))
	for _, e := range replay {
		s.gateway.Unicast(id.ID, e)
	}
	return nil
}

// RoomMessage relays a chat message to every other member with a
// server-stamped HH:MM time, and records it for late joiners.
func (s *Service) RoomMessage(from domain.Identity, p domain.RoomMessagePayload) error {
	room := s.registry.Get(p.RoomID)
	if room == nil {
		return domain.ErrRoomNotFound
	}

	relay := domain.NewEvent(domain.EventRoomMessage, domain.RoomMessageOut{
		Message:  p.Message,
		Username: p.Username,
		Time:     time.Now().Format("15:04"),
	})

	room.mu.Lock()
	room.history.Add(relay)
	recipients := make([]string, 0, len(room.members))
	for connID := range room.members {
		if connID != from.ID {
			recipients = append(recipients, connID)
		}
	}
	room.mu.Unlock()

	s.gateway.RoomCast(recipients, relay)
	return nil
}

// StartGame moves the room's session to in-progress: a fresh word set
// is generated, stats from any unfinished round are discarded, and
// every member is told the round began. There is deliberately no guard
// on membership size.
func (s *Service) StartGame(id domain.Identity, roomID string) error {
	room := s.registry.Get(roomID)
	if room == nil {
		return domain.ErrRoomNotFound
	}

	words := s.words.Generate(s.wordCount)

	room.mu.Lock()
	room.session.Start(words)
	members := room.memberIDs()
	players := room.memberIdentities()
	room.mu.Unlock()

	log.Printf("game started in room %s (%d members)", roomID, len(members))

	s.gateway.RoomCast(members, domain.NewEvent(domain.EventGameStarted, struct{}{}))
	s.gateway.RoomCast(members, domain.NewEvent(domain.EventGameWords, domain.GameWordsPayload{
		Words: words,
		Text:  strings.Join(words, " "),
	}))
	s.gateway.RoomCast(members, domain.NewEvent(domain.EventSendPlayers, domain.SendPlayersPayload{
		RoomID:  roomID,
		Players: players,
	}))
	return nil
}

// PlayersInRoom answers a member snapshot request
func (s *Service) PlayersInRoom(id domain.Identity, roomID string) error {
	room := s.registry.Get(roomID)
	if room == nil {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	players := room.memberIdentities()
	room.mu.Unlock()

	s.gateway.Unicast(id.ID, domain.NewEvent(domain.EventSendPlayers, domain.SendPlayersPayload{
		RoomID:  roomID,
		Players: players,
	}))
	return nil
}

// SubmitStats records one participant's result and, iff every live
// member has now reported, broadcasts the aggregated results and resets
// the session. Recording and the completion check happen under the room
// lock so two near-simultaneous submissions are serialized.
func (s *Service) SubmitStats(id domain.Identity, p domain.StatsPayload) error {
	room := s.registry.Get(p.RoomID)
	if room == nil {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	if !room.hasUsername(p.Username) {
		room.mu.Unlock()
		return domain.ErrInvalidState
	}
	if err := room.session.Record(p.Username, Result{WPM: p.WPM, Accuracy: p.Accuracy}); err != nil {
		room.mu.Unlock()
		return err
	}
	results, done := room.session.CompleteIfReady(len(room.members))
	members := room.memberIDs()
	room.mu.Unlock()

	if done {
		log.Printf("round completed in room %s (%d results)", p.RoomID, len(results))
		s.gateway.RoomCast(members, domain.NewEvent(domain.EventGameResults, domain.GameResultsPayload{
			RoomID:  p.RoomID,
			Results: results,
		}))
	}
	return nil
}

// Disconnected removes the identity from every room it was a member of.
// This is the correctness-critical cleanup path: a departed member's
// pending stats entry is purged, a round whose remaining members have
// all reported is completed, and a room left empty is reaped.
func (s *Service) Disconnected(id domain.Identity) {
	log.Printf("client disconnected: %s (%s)", id.ID, id.Username)

	for _, room := range s.registry.All() {
		room.mu.Lock()
		username, wasMember := room.members[id.ID]
		if !wasMember {
			room.mu.Unlock()
			continue
		}

		delete(room.members, id.ID)

		// Only purge the departing user's stats if no remaining member
		// shares the display name (collisions are permitted).
		if !room.hasUsername(username) {
			room.session.RemoveParticipant(username)
		}

		if len(room.members) == 0 {
			room.mu.Unlock()
			s.registry.Delete(room.ID)
			log.Printf("room %s empty, removed", room.ID)
			s.gateway.Broadcast("", domain.NewEvent(domain.EventRooms, domain.RoomsPayload{
				Rooms: s.registry.List(),
			}))
			continue
		}

		// The departure may have made |stats| == |members| for those
		// still here; finish the round for them.
		results, done := room.session.CompleteIfReady(len(room.members))
		members := room.memberIDs()
		room.mu.Unlock()

		if done {
			log.Printf("round completed in room %s after departure of %s", room.ID, username)
			s.gateway.RoomCast(members, domain.NewEvent(domain.EventGameResults, domain.GameResultsPayload{
				RoomID:  room.ID,
				Results: results,
			}))
		}
	}
}
