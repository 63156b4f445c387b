package ui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/textarea"
	"go.uber.org/zap"

	"github.com/dyike/widgetchat/internal/models"
)

func testModel() *Model {
	return &Model{
		logger:   zap.NewNop(),
		textarea: textarea.New(),
		cards:    map[string]*cardState{},
		selected: -1,
	}
}

func messageWithWidgets(ids ...string) models.Message {
	msg := models.Message{Role: models.RoleAssistant, Content: "here"}
	for _, id := range ids {
		msg.Widgets = append(msg.Widgets, models.Widget{ID: id, Type: models.WidgetTypeClock})
	}
	return msg
}

func TestRebuildCardsPreservesSurvivorState(t *testing.T) {
	m := testModel()
	m.messages = []models.Message{messageWithWidgets("w-1", "w-2")}
	m.rebuildCards()

	m.cards["w-1"].status = cardError
	m.cards["w-1"].errMsg = "boom"

	// w-2 disappears after a re-fetch; w-1 survives with its error intact.
	m.messages = []models.Message{messageWithWidgets("w-1")}
	m.rebuildCards()

	if len(m.cardOrder) != 1 || m.cardOrder[0] != "w-1" {
		t.Fatalf("unexpected card order %v", m.cardOrder)
	}
	if m.cards["w-1"].status != cardError || m.cards["w-1"].errMsg != "boom" {
		t.Errorf("surviving card lost its render state: %+v", m.cards["w-1"])
	}
	if _, ok := m.cards["w-2"]; ok {
		t.Error("removed widget still indexed")
	}
}

func TestRebuildCardsClampsSelectionAndFullscreen(t *testing.T) {
	m := testModel()
	m.messages = []models.Message{messageWithWidgets("w-1", "w-2", "w-3")}
	m.rebuildCards()
	m.selected = 2
	m.fullscreen = "w-3"
	m.showConfig = true

	m.messages = []models.Message{messageWithWidgets("w-1")}
	m.rebuildCards()

	if m.selected != 0 {
		t.Errorf("selection not clamped, got %d", m.selected)
	}
	if m.fullscreen != "" || m.showConfig {
		t.Error("fullscreen must clear when its widget is gone")
	}
}

func TestRefreshDoneTransitionsCardState(t *testing.T) {
	m := testModel()
	m.messages = []models.Message{messageWithWidgets("w-1")}
	m.rebuildCards()
	m.cards["w-1"].status = cardLoading

	m.Update(refreshDoneMsg{gen: m.gen, widgetID: "w-1", err: errors.New("backend down")})
	if m.cards["w-1"].status != cardError || m.cards["w-1"].errMsg != "backend down" {
		t.Errorf("expected error state, got %+v", m.cards["w-1"])
	}

	m.cards["w-1"].status = cardLoading
	m.Update(refreshDoneMsg{gen: m.gen, widgetID: "w-1"})
	if m.cards["w-1"].status != cardIdle || m.cards["w-1"].errMsg != "" {
		t.Errorf("expected idle state after success, got %+v", m.cards["w-1"])
	}
}

func TestRefreshDoneDropsStaleGeneration(t *testing.T) {
	m := testModel()
	m.messages = []models.Message{messageWithWidgets("w-1")}
	m.rebuildCards()
	m.cards["w-1"].status = cardLoading

	m.gen++ // the view moved on, e.g. another session was opened
	m.Update(refreshDoneMsg{gen: m.gen - 1, widgetID: "w-1", err: errors.New("late failure")})

	if m.cards["w-1"].status != cardLoading {
		t.Errorf("stale completion must not touch card state, got %+v", m.cards["w-1"])
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	m := testModel()
	m.messages = []models.Message{messageWithWidgets("w-1", "w-2")}
	m.rebuildCards()

	m.moveSelection(1)
	if m.selected != 0 {
		t.Fatalf("first move should land on the first card, got %d", m.selected)
	}
	m.moveSelection(1)
	m.moveSelection(1)
	if m.selected != 1 {
		t.Errorf("selection ran past the last card, got %d", m.selected)
	}
	m.moveSelection(-5)
	if m.selected != 0 {
		t.Errorf("selection ran below zero, got %d", m.selected)
	}
}

func TestSendResultDropsStaleGeneration(t *testing.T) {
	m := testModel()
	m.sending = true

	m.gen++ // another session was opened while the send was in flight
	m.Update(sendResultMsg{gen: m.gen - 1, text: "old session text", err: errors.New("late failure")})

	if m.sending {
		t.Error("sending flag must clear even for stale completions")
	}
	if got := m.textarea.Value(); got != "" {
		t.Errorf("stale send must not restore text into the new view, got %q", got)
	}
	if m.statusIsErr {
		t.Error("stale send must not surface an error")
	}
}

func TestSendFailureRestoresInput(t *testing.T) {
	m := testModel()
	m.sending = true

	m.Update(sendResultMsg{gen: m.gen, text: "what's AAPL at?", err: errors.New("network")})

	if m.sending {
		t.Error("sending flag must clear on failure")
	}
	if got := m.textarea.Value(); got != "what's AAPL at?" {
		t.Errorf("input text not restored, got %q", got)
	}
	if !m.statusIsErr {
		t.Error("failure must surface as an error status")
	}
}
