package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/player"
	"github.com/muesli/termenv"
)

// SpeedStep is how much the + and - commands change the speed.
const SpeedStep = 10

// PlayOptions configures a terminal playback session.
type PlayOptions struct {
	Algorithm domain.AlgorithmID
	Input     domain.Input
	Speed     int
	BarHeight int
	Width     int
	Legend    bool
	// Headless prints one operation per line instead of redrawing frames.
	Headless bool
	// Plain disables colour and screen clearing.
	Plain bool
	// Explain asks for a complexity explanation once playback completes.
	Explain bool
}

// Session plays one recorded run in the terminal.
//
// While playing it reads one command per line from in:
// p (or an empty line) pauses and resumes, n steps while paused,
// + and - change the speed, r restarts and q quits.
type Session struct {
	stack  *Stack
	opts   PlayOptions
	in     io.Reader
	out    io.Writer
	term   *termenv.Output
	frames *tui.FrameRenderer
}

// NewSession creates a session writing to out. A nil in disables commands.
func NewSession(stack *Stack, opts PlayOptions, in io.Reader, out io.Writer) *Session {
	if opts.Speed == 0 {
		opts.Speed = player.DefaultSpeed
	}
	frameOpts := []tui.FrameOption{
		tui.WithWidth(opts.Width),
		tui.WithBarHeight(opts.BarHeight),
		tui.WithLegend(opts.Legend),
	}
	profile := termenv.ColorProfile()
	if opts.Plain {
		profile = termenv.Ascii
		frameOpts = append(frameOpts, tui.WithProfile(profile))
	}
	return &Session{
		stack:  stack,
		opts:   opts,
		in:     in,
		out:    out,
		term:   termenv.NewOutput(out, termenv.WithProfile(profile)),
		frames: tui.NewFrameRenderer(frameOpts...),
	}
}

// Play records the run and plays it until it completes, the user quits or
// ctx is cancelled. The recorded run is returned in every case but a failed
// recording.
func (s *Session) Play(ctx context.Context) (*domain.Run, error) {
	if s.opts.Speed < domain.MinSpeed || s.opts.Speed > domain.MaxSpeed {
		return nil, fmt.Errorf("%w: speed must be between %d and %d, got %d", domain.ErrInvalidInput, domain.MinSpeed, domain.MaxSpeed, s.opts.Speed)
	}
	info, err := domain.Lookup(s.opts.Algorithm)
	if err != nil {
		return nil, err
	}

	run, err := s.stack.Engine.Record(ctx, s.opts.Algorithm, s.opts.Input)
	if err != nil {
		return nil, err
	}

	quit := make(chan struct{})
	defer close(quit)

	events := make(chan *domain.StepEvent, len(run.Steps))
	done := make(chan struct{})
	var once sync.Once
	p := s.stack.Engine.NewPlayer(
		player.WithSpeed(s.opts.Speed),
		player.WithLifecycleHooks(domain.LifecycleHooks{
			OnStepPublished: func(e *domain.StepEvent) {
				select {
				case events <- e:
				case <-quit:
				}
			},
			OnStatusChange: func(e *domain.StatusEvent) {
				if e.To == domain.StatusComplete {
					once.Do(func() { close(done) })
				}
			},
		}),
	)
	defer p.Reset()

	commands := s.readCommands(quit)

	if !s.opts.Headless {
		s.clear()
		tui.PrintBanner(s.out)
	}
	printSystemMessage(s.out, "%s · %s · %d steps", info.Name, info.Complexity, len(run.Steps))

	speed := s.opts.Speed
	if err := p.Start(run.Steps, domain.IntervalForSpeed(speed)); err != nil {
		return run, err
	}

	drain := func() {
		for {
			select {
			case e := <-events:
				s.show(p, e)
			default:
				return
			}
		}
	}

	for {
		select {
		case e := <-events:
			s.show(p, e)

		case <-done:
			// The final step is queued before the status change.
			drain()
			s.summarize(ctx, info, run)
			return run, nil

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch cmd {
			case "q", "quit":
				drain()
				printSystemMessage(s.out, "Stopped at step %d/%d.", p.Snapshot().Cursor, len(run.Steps))
				return run, nil
			case "", "p", "pause":
				if p.Snapshot().Status == domain.StatusRunning {
					_ = p.Pause()
					printSystemMessage(s.out, "Paused. Enter resumes, n steps.")
				} else if err := p.Start(nil, domain.IntervalForSpeed(speed)); err != nil {
					s.stack.Logger.Debug("resume ignored", "error", err)
				}
			case "n", "next":
				if p.Snapshot().Status == domain.StatusRunning {
					_ = p.Pause()
				}
				if _, err := p.Step(); err != nil {
					s.stack.Logger.Debug("step ignored", "error", err)
				}
			case "+", "-":
				if cmd == "+" {
					speed = min(speed+SpeedStep, domain.MaxSpeed)
				} else {
					speed = max(speed-SpeedStep, domain.MinSpeed)
				}
				_ = p.SetSpeed(speed)
				printSystemMessage(s.out, "Speed %d%%", speed)
			case "r", "restart":
				p.Reset()
				if err := p.Start(run.Steps, domain.IntervalForSpeed(speed)); err != nil {
					return run, err
				}
			default:
				printSystemMessage(s.out, "Unknown command %q (p, n, +, -, r, q)", cmd)
			}

		case <-ctx.Done():
			return run, ctx.Err()
		}
	}
}

func (s *Session) readCommands(quit <-chan struct{}) <-chan string {
	if s.in == nil {
		return nil
	}
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case out <- strings.ToLower(strings.TrimSpace(scanner.Text())):
			case <-quit:
				return
			}
		}
	}()
	return out
}

func (s *Session) clear() {
	if s.opts.Plain {
		return
	}
	s.term.ClearScreen()
}

func (s *Session) show(p *player.Player, e *domain.StepEvent) {
	if s.opts.Headless {
		fmt.Fprintf(s.out, "[%d/%d] %s\n", e.Index+1, e.Total, e.Step.Operation)
		return
	}
	state := domain.PlaybackState{
		Cursor: e.Index + 1,
		Total:  e.Total,
		Status: p.Snapshot().Status,
	}
	s.clear()
	fmt.Fprint(s.out, s.frames.Render(s.opts.Algorithm, e.Step, state))
}

func (s *Session) summarize(ctx context.Context, info domain.AlgorithmInfo, run *domain.Run) {
	final, _ := run.Final()
	printSystemMessage(s.out, "%s finished: %d steps, %d comparisons, %d swaps. Run %s",
		info.Name, len(run.Steps), final.Comparisons, final.Swaps, run.ID)

	if !s.opts.Explain {
		return
	}
	text, err := s.stack.Explainer.ExplainComplexity(ctx, string(info.ID))
	if err != nil {
		s.stack.Logger.Debug("explanation failed", "error", err)
		printSystemMessage(s.out, "%s", errorMessage(err))
		return
	}
	writeMarkdown(s.out, s.opts.Width, text)
}
