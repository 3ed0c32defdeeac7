package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eiannone/keyboard"

	"hanobf/internal/emitter"
	"hanobf/pkg/obfuscate"
)

const (
	linePrompt   = "한글 문장을 입력하세요: "
	rerollPrompt = "[r] 다시 섞기  [enter] 새 문장  [q/esc] 종료"
)

// KeySource reads single key presses in raw mode. Raw mode is only held
// while a choice is pending so line input keeps the terminal's editing.
type KeySource interface {
	Open() error
	GetKey() (rune, keyboard.Key, error)
	Close() error
}

type terminalKeys struct{}

func (terminalKeys) Open() error                         { return keyboard.Open() }
func (terminalKeys) GetKey() (rune, keyboard.Key, error) { return keyboard.GetKey() }
func (terminalKeys) Close() error                        { return keyboard.Close() }

func TerminalKeys() KeySource {
	return terminalKeys{}
}

type action int

const (
	actionNext action = iota
	actionReroll
	actionQuit
)

type Session struct {
	in   *bufio.Reader
	out  io.Writer
	keys KeySource
	obf  *obfuscate.Obfuscator
	rep  emitter.Output
}

// NewSession wires a session. rep should be the notifier obf was built
// with so the selection notice precedes every result.
func NewSession(in io.Reader, out io.Writer, keys KeySource, obf *obfuscate.Obfuscator, rep emitter.Output) *Session {
	return &Session{in: bufio.NewReader(in), out: out, keys: keys, obf: obf, rep: rep}
}

// Run loops until the input ends or the user quits.
func (s *Session) Run() error {
	for {
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		for {
			res := s.obf.Obfuscate(line)
			if err := s.rep.SendText(res.Text); err != nil {
				return err
			}
			act, err := s.choose()
			if err != nil {
				return err
			}
			if act == actionQuit {
				return nil
			}
			if act == actionNext {
				break
			}
		}
	}
}

func (s *Session) readLine() (string, error) {
	if _, err := fmt.Fprint(s.out, linePrompt); err != nil {
		return "", err
	}
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) choose() (action, error) {
	if _, err := fmt.Fprintf(s.out, "\n%s\n", rerollPrompt); err != nil {
		return actionQuit, err
	}
	if err := s.keys.Open(); err != nil {
		return actionQuit, fmt.Errorf("keyboard: %w", err)
	}
	defer s.keys.Close()

	for {
		ch, key, err := s.keys.GetKey()
		if err != nil {
			return actionQuit, fmt.Errorf("keyboard: %w", err)
		}
		switch {
		case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || key == keyboard.KeyCtrlD:
			return actionQuit, nil
		case key == keyboard.KeyEnter:
			return actionNext, nil
		case ch == 'r' || ch == 'R' || key == keyboard.KeySpace:
			return actionReroll, nil
		case ch == 'q' || ch == 'Q':
			return actionQuit, nil
		}
	}
}
