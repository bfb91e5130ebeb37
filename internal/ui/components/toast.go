// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/ui/styles"
	"github.com/jeranaias/chatline/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind is the flavour of a toast notification.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// maxToasts caps the visible stack.
const maxToasts = 3

// Toast is a short non-blocking notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
}

// Expired reports whether the toast has outlived ToastDuration at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= ToastDuration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the active toasts, newest last.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, now: time.Now}
}

// SetClock replaces the time source.
func (m *ToastManager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Add shows a toast and returns its ID. The oldest toast is dropped when the
// stack is full.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{ID: m.nextID, Message: message, Kind: kind, CreatedAt: m.now()}
	m.nextID++
	m.toasts = append(m.toasts, t)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return t.ID
}

func (m *ToastManager) Info(message string) int    { return m.Add(ToastInfo, message) }
func (m *ToastManager) Success(message string) int { return m.Add(ToastSuccess, message) }
func (m *ToastManager) Error(message string) int   { return m.Add(ToastError, message) }

// Tick drops expired toasts and reports whether any remain.
func (m *ToastManager) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Active returns a copy of the visible toasts.
func (m *ToastManager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Dismiss removes a toast early.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders one toast no wider than width.
func RenderToast(th *styles.Theme, t Toast, width int) string {
	var (
		style lipgloss.Style
		icon  string
	)
	switch t.Kind {
	case ToastSuccess:
		style, icon = th.ToastSuccess, styles.Icons.Success
	case ToastError:
		style, icon = th.ToastError, styles.Icons.Error
	default:
		style, icon = th.ToastInfo, styles.Icons.Info
	}

	maxText := width - 6
	if maxText > 50 {
		maxText = 50
	}
	if maxText < 10 {
		maxText = 10
	}
	return style.Render(icon + " " + util.Truncate(t.Message, maxText))
}

// RenderToastStack renders the toasts right-aligned, newest at the bottom.
func RenderToastStack(th *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(th, t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	lines := strings.Split(stack, "\n")
	for i, l := range lines {
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Right, l)
	}
	return strings.Join(lines, "\n")
}
