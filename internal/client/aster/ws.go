package aster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

const DefaultMarkStreamURL = "wss://fstream.asterdex.com/ws/!markPrice@arr"

// MarkEvent is one markPriceUpdate push from the futures stream.
type MarkEvent struct {
	EventType   string `json:"e"`
	EventTime   int64  `json:"E"`
	Symbol      string `json:"s"`
	MarkPrice   string `json:"p"`
	IndexPrice  string `json:"i"`
	FundingRate string `json:"r"`
	NextFunding int64  `json:"T"`
}

type MarkStreamOptions struct {
	URL               string
	HeartbeatInterval time.Duration
	PingTimeout       time.Duration
	BackoffMin        time.Duration
	BackoffMax        time.Duration
	Logger            *zap.Logger
}

// MarkStream consumes the all-symbols mark price stream with reconnect
// and exponential backoff. Run blocks until the context is cancelled.
type MarkStream struct {
	opts      MarkStreamOptions
	seenFirst bool
}

func NewMarkStream(opts MarkStreamOptions) *MarkStream {
	if opts.URL == "" {
		opts.URL = DefaultMarkStreamURL
	}
	if opts.HeartbeatInterval == 0 {
		opts.HeartbeatInterval = 20 * time.Second
	}
	if opts.PingTimeout == 0 {
		opts.PingTimeout = 5 * time.Second
	}
	if opts.BackoffMin == 0 {
		opts.BackoffMin = 1 * time.Second
	}
	if opts.BackoffMax == 0 {
		opts.BackoffMax = 30 * time.Second
	}
	return &MarkStream{opts: opts}
}

func (s *MarkStream) Run(ctx context.Context, onEvents func([]MarkEvent)) error {
	if s == nil {
		return fmt.Errorf("stream is nil")
	}
	backoff := s.opts.BackoffMin
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, _, err := websocket.Dial(ctx, s.opts.URL, nil)
		if err != nil {
			if s.opts.Logger != nil {
				s.opts.Logger.Warn("mark stream connect failed", zap.Error(err))
			}
			if err := sleepWithJitter(ctx, backoff); err != nil {
				return err
			}
			backoff = nextBackoff(backoff, s.opts.BackoffMax)
			continue
		}
		// The all-symbols array frame grows with the listing count.
		conn.SetReadLimit(4 << 20)
		if s.opts.Logger != nil {
			s.opts.Logger.Info("mark stream connected")
		}
		backoff = s.opts.BackoffMin

		err = s.consume(ctx, conn, onEvents)
		_ = conn.Close(websocket.StatusNormalClosure, "reconnect")
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		if err := sleepWithJitter(ctx, backoff); err != nil {
			return err
		}
		backoff = nextBackoff(backoff, s.opts.BackoffMax)
	}
}

func (s *MarkStream) consume(ctx context.Context, conn *websocket.Conn, onEvents func([]MarkEvent)) error {
	heartbeatErr := make(chan error, 1)
	heartbeatCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(s.opts.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-heartbeatCtx.Done():
				heartbeatErr <- heartbeatCtx.Err()
				return
			case <-ticker.C:
				pingCtx, cancelPing := context.WithTimeout(heartbeatCtx, s.opts.PingTimeout)
				err := conn.Ping(pingCtx)
				cancelPing()
				if err != nil {
					heartbeatErr <- err
					return
				}
			}
		}
	}()

	for {
		select {
		case err := <-heartbeatErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		default:
		}
		_, data, err := conn.Read(ctx)
		if err != nil {
			if s.opts.Logger != nil && !errors.Is(err, context.Canceled) {
				s.opts.Logger.Warn("mark stream read failed", zap.Error(err))
			}
			return err
		}
		events, ok := parseMarkFrame(data)
		if !ok {
			continue
		}
		if s.opts.Logger != nil && !s.seenFirst {
			s.seenFirst = true
			s.opts.Logger.Info("mark stream first frame", zap.Int("symbols", len(events)))
		}
		if onEvents != nil && len(events) > 0 {
			onEvents(events)
		}
	}
}

// parseMarkFrame accepts both the array form of !markPrice@arr and a
// single-symbol markPriceUpdate object.
func parseMarkFrame(raw []byte) ([]MarkEvent, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, false
	}
	if strings.HasPrefix(trimmed, "[") {
		var events []MarkEvent
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, false
		}
		return events, true
	}
	var event MarkEvent
	if err := json.Unmarshal(raw, &event); err != nil || event.EventType != "markPriceUpdate" {
		return nil, false
	}
	return []MarkEvent{event}, true
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

func sleepWithJitter(ctx context.Context, base time.Duration) error {
	if base <= 0 {
		return nil
	}
	jitter := time.Duration(rand.Int63n(int64(base / 2)))
	timer := time.NewTimer(base + jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
