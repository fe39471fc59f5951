// Package interview runs the greeting and small-talk opening of an interview.
package interview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	configpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/config"
	"github.com/Ali-Aref1/Hireverse-Server/pkg/llm"
	loggerpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/logger"
	"github.com/Ali-Aref1/Hireverse-Server/pkg/prompt"
)

// ErrNoInput is returned when the console closes before the candidate answers.
var ErrNoInput = errors.New("no candidate input")

// Phase is a stage of the interview opening.
type Phase string

const (
	PhaseGreeting  Phase = "greeting"
	PhaseSmallTalk Phase = "small_talk"
	PhaseTerminal  Phase = "terminal"
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerInterviewer Speaker = "Interviewer"
	SpeakerCandidate   Speaker = "Candidate"
)

// Turn is one utterance, handed to the TurnHandler as soon as it exists.
type Turn struct {
	Phase   Phase
	Speaker Speaker
	Text    string
}

// TurnHandler observes turns. It must not retain the driver's state.
type TurnHandler func(Turn)

// Driver holds runtime state for one interview opening.
type Driver struct {
	config configpkg.Config
	model  llm.Completer
	script *prompt.Script
	onTurn TurnHandler

	logger  loggerpkg.Logger
	verbose bool
}

// Option configures optional Driver dependencies.
type Option func(*driverDeps)

type driverDeps struct {
	script *prompt.Script
	logger loggerpkg.Logger
	onTurn TurnHandler
}

// WithScript replaces the embedded default script.
func WithScript(s *prompt.Script) Option {
	return func(d *driverDeps) {
		d.script = s
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *driverDeps) {
		d.logger = l
	}
}

// WithTurnHandler registers an observer for every turn.
func WithTurnHandler(h TurnHandler) Option {
	return func(d *driverDeps) {
		d.onTurn = h
	}
}

// New builds a Driver that asks model for every interviewer line.
func New(cfg configpkg.Config, model llm.Completer, opts ...Option) (*Driver, error) {
	if model == nil {
		return nil, errors.New("model client is required")
	}
	cfg = configpkg.Normalize(cfg)

	deps := driverDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.script == nil {
		deps.script = prompt.DefaultScript()
	}
	if deps.script.Greeting == nil || deps.script.SmallTalk == nil {
		return nil, errors.New("script is missing a template")
	}

	return &Driver{
		config:  cfg,
		model:   model,
		script:  deps.script,
		onTurn:  deps.onTurn,
		logger:  loggerpkg.OrNop(deps.logger),
		verbose: cfg.Verbose,
	}, nil
}

// Run drives the opening to completion: one greeting, then the configured
// number of small-talk exchanges, each seeded only by the previous answer.
// The first model or console failure ends the run.
func (d *Driver) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reader := bufio.NewReader(in)
	rounds := d.config.SmallTalkRounds

	_, _ = fmt.Fprintf(out, "%s\n\n", d.script.Opening)
	loggerpkg.Debug(d.verbose, d.logger, "interview start", map[string]any{
		"rounds": rounds,
	})

	lastResponse, err := d.exchange(ctx, reader, out, PhaseGreeting, d.script.Greeting, nil)
	if err != nil {
		return err
	}

	for round := 1; round <= rounds; round++ {
		loggerpkg.Debug(d.verbose, d.logger, "small talk round", map[string]any{
			"round": round,
			"of":    rounds,
		})
		_, _ = fmt.Fprintln(out)
		vars := map[string]string{prompt.LastResponseKey: lastResponse}
		lastResponse, err = d.exchange(ctx, reader, out, PhaseSmallTalk, d.script.SmallTalk, vars)
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "\n%s\n", d.script.Closing)
	loggerpkg.Debug(d.verbose, d.logger, "interview opening finished", map[string]any{
		"phase": PhaseTerminal,
	})
	return nil
}

// exchange performs one turn: format, ask the model, print, then read the answer.
func (d *Driver) exchange(
	ctx context.Context,
	reader *bufio.Reader,
	out io.Writer,
	phase Phase,
	tmpl *prompt.Template,
	vars map[string]string,
) (string, error) {
	text, err := tmpl.Format(vars)
	if err != nil {
		return "", fmt.Errorf("%s prompt: %w", phase, err)
	}

	reply, err := d.model.Complete(ctx, text)
	if err != nil {
		loggerpkg.Error(d.logger, "model call failed", map[string]any{
			"phase": phase,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%s model call: %w", phase, err)
	}
	d.emit(Turn{Phase: phase, Speaker: SpeakerInterviewer, Text: reply})
	_, _ = fmt.Fprintf(out, "%s: %s\n", SpeakerInterviewer, reply)

	_, _ = fmt.Fprintf(out, "%s: ", SpeakerCandidate)
	answer, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("read candidate input: %w", err)
	}
	d.emit(Turn{Phase: phase, Speaker: SpeakerCandidate, Text: answer})
	return answer, nil
}

func (d *Driver) emit(t Turn) {
	if d.onTurn != nil {
		d.onTurn(t)
	}
}

// readLine returns one line without its terminator. A final unterminated
// line is accepted; EOF with nothing read is ErrNoInput.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
