// Package process runs the external helper commands threadchat shells out to:
// an audio player for synthesized speech and an optional dictation command.
package process

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
)

// DictationLangHint is passed to the dictation command as LANG_HINT.
const DictationLangHint = "vi-VN"

// dictationTimeout caps how long a dictation command may listen.
const dictationTimeout = 2 * time.Minute

// SplitCommand splits a configured command line into program and arguments.
// Quoting is not supported; wrap complex commands in a script.
func SplitCommand(cmdline string) (string, []string) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Installed reports whether the program of cmdline is on the PATH.
func Installed(cmdline string) bool {
	prog, _ := SplitCommand(cmdline)
	if prog == "" {
		return false
	}
	_, err := exec.LookPath(prog)
	return err == nil
}

// Player plays audio files one at a time. Starting a new playback stops the
// one in progress.
type Player struct {
	cmdline string

	mu      sync.Mutex
	current *exec.Cmd
	file    string
	gen     int
}

// NewPlayer creates a player that runs cmdline with the audio file appended.
func NewPlayer(cmdline string) *Player {
	return &Player{cmdline: cmdline}
}

// Play writes audio to a temp file and starts the player on it. It returns
// once the player has started; playback continues in the background.
func (p *Player) Play(audio []byte) error {
	prog, args := SplitCommand(p.cmdline)
	if prog == "" {
		return pkgerrors.CommandNotConfigured("audio_player")
	}

	f, err := os.CreateTemp("", "threadchat-speech-*.mp3")
	if err != nil {
		return pkgerrors.E(pkgerrors.Op("process.Play"), pkgerrors.KindIO, err)
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return pkgerrors.E(pkgerrors.Op("process.Play"), pkgerrors.KindIO, err)
	}
	f.Close()

	// Stop and start under one lock: at most one player runs at a time.
	p.mu.Lock()
	p.stopLocked()
	cmd := exec.Command(prog, append(args, f.Name())...)
	if err := cmd.Start(); err != nil {
		p.mu.Unlock()
		os.Remove(f.Name())
		return pkgerrors.CommandFailed("audio_player", err)
	}
	p.gen++
	gen := p.gen
	p.current = cmd
	p.file = f.Name()
	p.mu.Unlock()

	log := logger.WithComponent("process")
	log.Debug("playback started", "pid", cmd.Process.Pid, "bytes", len(audio))

	go func() {
		err := cmd.Wait()
		log.Debug("playback finished", "pid", cmd.Process.Pid, "error", err)
		os.Remove(f.Name())

		p.mu.Lock()
		if p.gen == gen {
			p.current = nil
			p.file = ""
		}
		p.mu.Unlock()
	}()
	return nil
}

// Playing reports whether a playback is in progress.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// Stop kills the current playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked kills the current playback. p.mu must be held.
func (p *Player) stopLocked() {
	cmd := p.current
	p.current = nil
	p.file = ""
	if cmd != nil && cmd.Process != nil {
		if err := cmd.Process.Kill(); err != nil {
			logger.WithComponent("process").Debug("failed to stop playback", "error", err)
		}
	}
}

// Dictate runs cmdline and returns its trimmed stdout as transcribed text.
func Dictate(ctx context.Context, cmdline string) (string, error) {
	prog, args := SplitCommand(cmdline)
	if prog == "" {
		return "", pkgerrors.CommandNotConfigured("dictation_command")
	}

	ctx, cancel := context.WithTimeout(ctx, dictationTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, prog, args...)
	cmd.Env = append(os.Environ(), "LANG_HINT="+DictationLangHint)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.WithComponent("process").Warn("dictation failed", "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return "", pkgerrors.CommandFailed("dictation_command", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
