package live

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	popover "github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/sched"
)

// EventFrame is the wire format for client events.
type EventFrame struct {
	Seq     uint64 `json:"seq"`
	Source  string `json:"source"`
	Event   string `json:"event"`
	Key     string `json:"key,omitempty"`
	Dismiss bool   `json:"dismiss,omitempty"`
	Inside  bool   `json:"inside,omitempty"`
}

// PatchFrame is the wire format for state updates sent to the client.
type PatchFrame struct {
	Seq      uint64  `json:"seq"`
	Open     bool    `json:"open"`
	Rotation float64 `json:"rotation"`
	Origin   string  `json:"origin"`
}

// Session drives one popover instance over a WebSocket connection.
// All popover access happens on the Run goroutine: the read loop only
// queues frames, and timer callbacks re-enter through Dispatch.
type Session struct {
	ID string

	conn    *websocket.Conn
	pop     *popover.Popover
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	events     chan EventFrame
	dispatchCh chan func()
	done       chan struct{}
	closeOnce  sync.Once

	seq      uint64
	kind     string
	wasOpen  bool
	openedAt time.Time
}

// NewSession creates a session around an upgraded connection. The
// popover is built from cfg with a clock whose callbacks are
// dispatched onto the session loop.
func NewSession(conn *websocket.Conn, cfg popover.Config, logger *slog.Logger, metrics *Metrics, tracer trace.Tracer) (*Session, error) {
	s := &Session{
		ID:         newSessionID(),
		conn:       conn,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		events:     make(chan EventFrame, 64),
		dispatchCh: make(chan func(), 16),
		done:       make(chan struct{}),
		kind:       cfg.InteractionKind.String(),
	}
	s.logger = s.logger.With("session_id", s.ID)

	pop, err := popover.New(cfg,
		popover.WithClock(sched.Dispatched(sched.System(), s)),
		popover.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.pop = pop
	return s, nil
}

// Dispatch implements sched.Dispatcher: fn runs on the session loop.
func (s *Session) Dispatch(fn func()) {
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// Close tears the session down. Safe to call from any goroutine and
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Run processes the session until the connection closes or ctx is
// cancelled. It owns the popover: Dispose happens on exit.
func (s *Session) Run(ctx context.Context) {
	s.metrics.ActiveSessions.Inc()
	defer s.metrics.ActiveSessions.Dec()
	defer s.pop.Dispose()
	defer s.Close()

	go s.readLoop()

	s.logger.Info("session started", "kind", s.kind)
	s.sendPatch()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case fn := <-s.dispatchCh:
			fn()
			s.patchIfChanged(ctx, nil)
		case frame := <-s.events:
			s.handleEvent(ctx, frame)
		}
	}
}

// readLoop reads frames off the wire and queues them for the Run loop.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		var frame EventFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.metrics.WSErrors.WithLabelValues("read").Inc()
			}
			return
		}

		select {
		case s.events <- frame:
		case <-s.done:
			return
		}
	}
}

// handleEvent classifies and delivers one client frame.
func (s *Session) handleEvent(ctx context.Context, frame EventFrame) {
	ev, evOK := parseEvent(frame.Event, frame.Key)
	src, srcOK := parseSource(frame.Source)
	if !evOK || !srcOK {
		s.logger.Warn("unknown event frame", "event", frame.Event, "source", frame.Source)
		s.metrics.WSErrors.WithLabelValues("frame").Inc()
		return
	}
	if src == interaction.SourceDocument && frame.Inside {
		// Document-level events originating inside the popover's own
		// subtree never count as outside clicks.
		return
	}

	_, span := s.tracer.Start(ctx, "popover."+frame.Event,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("popover.session_id", s.ID),
			attribute.String("popover.kind", s.kind),
			attribute.String("popover.source", frame.Source),
		),
	)
	defer span.End()

	s.metrics.EventsTotal.WithLabelValues(frame.Event).Inc()

	raw := &dom.Event{
		Type:    frame.Event,
		Key:     frame.Key,
		Dismiss: frame.Dismiss,
		Inside:  frame.Inside,
	}
	s.pop.Deliver(ev, src, raw)
	s.patchIfChanged(ctx, span)
	span.SetStatus(codes.Ok, "")
}

// patchIfChanged sends a patch and records open/close metrics when the
// visible state moved.
func (s *Session) patchIfChanged(ctx context.Context, span trace.Span) {
	open := s.pop.IsOpen()
	if open == s.wasOpen {
		return
	}
	s.wasOpen = open

	if open {
		s.openedAt = time.Now()
		s.metrics.OpensTotal.WithLabelValues(s.kind).Inc()
	} else {
		s.metrics.ClosesTotal.WithLabelValues(s.kind).Inc()
		s.metrics.OpenDuration.Observe(time.Since(s.openedAt).Seconds())
	}
	if span != nil {
		span.SetAttributes(attribute.Bool("popover.open", open))
	}

	s.sendPatch()
}

// sendPatch writes the current state to the client.
func (s *Session) sendPatch() {
	st := s.pop.State()
	s.seq++
	frame := PatchFrame{
		Seq:      s.seq,
		Open:     st.IsOpen,
		Rotation: st.ArrowRotation,
		Origin:   st.TransformOrigin,
	}
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Error("write error", "error", err)
		s.metrics.WSErrors.WithLabelValues("write").Inc()
		s.Close()
	}
}

// parseEvent maps a wire event name to the classified event kind. A
// keydown only maps when the key is Escape.
func parseEvent(name, key string) (interaction.Event, bool) {
	switch name {
	case "click":
		return interaction.EventClick, true
	case "mouseenter":
		return interaction.EventMouseEnter, true
	case "mouseleave":
		return interaction.EventMouseLeave, true
	case "mousedown":
		return interaction.EventMouseDown, true
	case "focus":
		return interaction.EventFocus, true
	case "blur":
		return interaction.EventBlur, true
	case "keydown":
		if key == dom.KeyEscape {
			return interaction.EventEscape, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// parseSource maps a wire source name to the event source.
func parseSource(name string) (interaction.Source, bool) {
	switch name {
	case "target":
		return interaction.SourceTarget, true
	case "content":
		return interaction.SourceContent, true
	case "backdrop":
		return interaction.SourceBackdrop, true
	case "document":
		return interaction.SourceDocument, true
	case "dismiss":
		return interaction.SourceDismiss, true
	default:
		return 0, false
	}
}

// newSessionID returns a random 16-byte hex identifier.
func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "session-unknown"
	}
	return hex.EncodeToString(b[:])
}
