// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/sanitize"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// lineView prints conversation events as plain lines. Replies go to out and
// failure messages to errOut. The user's own line is already on screen, so
// user turns are not echoed.
type lineView struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	label  lipgloss.Style
	failed lipgloss.Style
	player sound.Player
	// labels prefixes replies with the speaker name.
	labels bool
}

var _ exchange.View = (*lineView)(nil)

func newLineView(out, errOut io.Writer, theme *styles.Theme, player sound.Player) *lineView {
	if player == nil {
		player = sound.Nop{}
	}
	v := &lineView{out: out, errOut: errOut, player: player}
	v.setTheme(theme)
	return v
}

func (v *lineView) setTheme(theme *styles.Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.label = theme.BubbleLabel
	v.failed = theme.NewStyle().Foreground(styles.Danger)
}

func (v *lineView) OnUserTurn(model.Turn) {}

func (v *lineView) OnPending(string) {}

func (v *lineView) OnModelTurn(_ string, turn model.Turn) {
	v.mu.Lock()
	defer v.mu.Unlock()

	text := sanitize.Strip(turn.Text)
	if v.labels {
		label := v.label.Render(turn.Role.DisplayName() + ":")
		fmt.Fprintf(v.out, "%s %s\n\n", label, text)
	} else {
		fmt.Fprintln(v.out, text)
	}
	v.player.Play(sound.Receive)
}

func (v *lineView) OnError(_ string, _ exchange.ErrorKind, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.errOut, v.failed.Render(message))
}

func (v *lineView) OnScroll() {}

func (v *lineView) OnClear() {}
