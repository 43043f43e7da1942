package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []struct{ level, score int }{{1, 50}, {1, 80}, {2, 200}} {
		if _, err := store.SaveScore("Ada", s.level, s.score); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	m := NewScoreboardModel(Env{Store: store}, 120, 30)
	if m.tabs[0].Level != 0 || len(m.tabs) < 3 {
		t.Fatalf("expected an all-levels tab followed by level tabs, got %+v", m.tabs)
	}
	if len(m.scores) != 3 || m.scores[0].Score != 200 {
		t.Fatalf("all-levels tab: unexpected scores %+v", m.scores)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 2 || m.scores[0].Score != 80 {
		t.Errorf("level 1 tab: unexpected scores %+v", m.scores)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.tabCursor != len(m.tabs)-1 {
		t.Errorf("shift+tab should wrap to the last tab, got %d", m.tabCursor)
	}

	if view := m.View(); !strings.Contains(view, "HIGH SCORES") {
		t.Errorf("view missing title:\n%s", view)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(Env{}, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
	next, _ = m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
