package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/dto"
)

const liveSendBufferSize = 16

// LiveService fans evaluation events out to websocket subscribers of a
// debate. When a NATS connection is configured, events are relayed across
// nodes; otherwise delivery is local only.
type LiveService struct {
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	nodeID      string

	mu    sync.RWMutex
	rooms map[uint]map[*liveClient]struct{}
}

type liveClient struct {
	conn   *websocket.Conn
	send   chan dto.LiveEvent
	closed chan struct{}
	once   sync.Once
}

type liveEnvelope struct {
	Source string        `json:"source"`
	Event  dto.LiveEvent `json:"event"`
}

// NewLiveService constructs the live feed hub. natsConn may be nil.
func NewLiveService(natsConn *nats.Conn, subjectBase string, logger zerolog.Logger) *LiveService {
	subject := ""
	if subjectBase != "" {
		subject = subjectBase + ".debates.events"
	}

	return &LiveService{
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "live_service").Logger(),
		nodeID:      uuid.NewString(),
		rooms:       make(map[uint]map[*liveClient]struct{}),
	}
}

// Start subscribes to cross-node events when NATS is configured.
func (s *LiveService) Start(ctx context.Context) {
	if s.nats == nil || s.natsSubject == "" {
		return
	}

	sub, err := s.nats.Subscribe(s.natsSubject, func(msg *nats.Msg) {
		var envelope liveEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			s.logger.Warn().Err(err).Msg("dropping malformed live event")
			return
		}
		if envelope.Source == s.nodeID {
			return
		}
		s.broadcast(envelope.Event)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to live events")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to unsubscribe from live events")
		}
	}()
}

// PublishEvaluation pushes a freshly produced evaluation to subscribers.
func (s *LiveService) PublishEvaluation(debateID uint, evaluation dto.EvaluationResponse) {
	event := dto.LiveEvent{
		Type:       "evaluation",
		DebateID:   debateID,
		Evaluation: &evaluation,
		SentAt:     time.Now().UTC(),
	}

	s.broadcast(event)

	if s.nats != nil && s.natsSubject != "" {
		payload, err := json.Marshal(liveEnvelope{Source: s.nodeID, Event: event})
		if err != nil {
			return
		}
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			s.logger.Warn().Err(err).Uint("debate_id", debateID).Msg("failed to relay live event")
		}
	}
}

// ServeConnection pumps events for one websocket subscriber until the peer
// disconnects. Must be called from the websocket upgrade handler.
func (s *LiveService) ServeConnection(conn *websocket.Conn, debateID uint) {
	client := &liveClient{
		conn:   conn,
		send:   make(chan dto.LiveEvent, liveSendBufferSize),
		closed: make(chan struct{}),
	}

	s.subscribe(debateID, client)
	defer s.unsubscribe(debateID, client)

	go client.writeLoop(s.logger)

	// Reads are discarded; the feed is one-way. The loop exits when the
	// peer closes the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	client.close()
}

// SubscriberCount reports the number of live subscribers for a debate.
func (s *LiveService) SubscriberCount(debateID uint) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms[debateID])
}

func (s *LiveService) subscribe(debateID uint, client *liveClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[debateID] == nil {
		s.rooms[debateID] = make(map[*liveClient]struct{})
	}
	s.rooms[debateID][client] = struct{}{}
}

func (s *LiveService) unsubscribe(debateID uint, client *liveClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clients, ok := s.rooms[debateID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(s.rooms, debateID)
		}
	}
	client.close()
}

func (s *LiveService) broadcast(event dto.LiveEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for client := range s.rooms[event.DebateID] {
		select {
		case client.send <- event:
		default:
			s.logger.Warn().Uint("debate_id", event.DebateID).Msg("dropping live event for slow subscriber")
		}
	}
}

func (c *liveClient) writeLoop(logger zerolog.Logger) {
	for {
		select {
		case event := <-c.send:
			if err := c.conn.WriteJSON(event); err != nil {
				logger.Debug().Err(err).Uint("debate_id", event.DebateID).Msg("live write failed")
				c.close()
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *liveClient) close() {
	c.once.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}
