package game

import (
	"context"
	"errors"
	"log"
	"time"
)

type result struct {
	value any
	err   error
}

type command struct {
	ctx   context.Context
	run   func(ctx context.Context) (any, error)
	reply chan result
}

// Start runs the command loop. It returns once the loop is running; the loop
// itself exits on Stop or when ctx is done.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrEngineRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.stopped = make(chan struct{})
	s.running = true

	go s.loop(loopCtx, s.stopped)

	log.Printf("Game engine started (sweep every %s)", s.sweepInterval)
	return nil
}

// Stop ends the loop and waits for the command in flight to finish
func (s *service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, stopped := s.cancel, s.stopped
	s.mu.Unlock()

	cancel()
	<-stopped
	log.Printf("Game engine stopped")
}

func (s *service) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	var sweep <-chan time.Time
	if s.sweepInterval > 0 {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case cmd := <-s.commands:
			cmd.reply <- runCommand(cmd)
		case <-sweep:
			s.sweepExpiredVotes(ctx)
		}
	}
}

func runCommand(cmd command) (res result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in game command: %v", r)
			res = result{err: errors.New("game command panicked")}
		}
	}()
	value, err := cmd.run(cmd.ctx)
	return result{value: value, err: err}
}

// drain fails commands that were queued when the loop stopped
func (s *service) drain() {
	for {
		select {
		case cmd := <-s.commands:
			cmd.reply <- result{err: ErrEngineStopped}
		default:
			return
		}
	}
}

func (s *service) sweepExpiredVotes(ctx context.Context) {
	out, err := s.voting.CloseExpiredSessions(ctx)
	if err != nil {
		log.Printf("Failed to close expired votes: %v", err)
		return
	}
	if len(out.Closed) > 0 {
		log.Printf("Closed %d expired vote(s)", len(out.Closed))
	}
}

// execute hands run to the loop and waits for its result
func execute[T any](ctx context.Context, s *service, run func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return zero, ErrEngineStopped
	}

	cmd := command{
		ctx: ctx,
		run: func(ctx context.Context) (any, error) {
			return run(ctx)
		},
		reply: make(chan result, 1),
	}

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.stoppedChan():
		return zero, ErrEngineStopped
	}

	// A queued command always gets a reply, either its result or ErrEngineStopped
	res := <-cmd.reply
	if res.err != nil {
		return zero, res.err
	}
	value, ok := res.value.(T)
	if !ok && res.value != nil {
		return zero, errors.New("unexpected command result type")
	}
	return value, nil
}

func (s *service) stoppedChan() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
