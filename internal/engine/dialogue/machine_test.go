package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/session"
)

func testMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine("root")
	m.AddState(model.DialogueState{
		ID:      "root",
		Message: "Welcome! Choose a topic.",
		Options: []model.StateOption{
			{Keyword: "order", Target: "orders_menu"},
			{Keyword: "return", Target: "returns_menu"},
		},
	})
	m.AddState(model.DialogueState{
		ID:      "orders_menu",
		Message: "Orders menu.",
		Options: []model.StateOption{
			{Keyword: "track", Target: "order_track"},
			{Keyword: "back", Target: "root"},
		},
	})
	m.AddState(model.DialogueState{
		ID:      "returns_menu",
		Message: "Returns menu.",
		Options: []model.StateOption{
			{Keyword: "back", Target: "root"},
		},
	})
	m.AddState(model.DialogueState{
		ID:      "order_track",
		Message: "Provide your order id.",
		Leaf:    true,
		Options: []model.StateOption{
			{Keyword: "back", Target: "orders_menu"},
		},
	})
	require.NoError(t, m.Validate())
	return m
}

func acquire(t *testing.T, m *Machine, id string) (*session.Session, func()) {
	t.Helper()
	store := session.NewStore(m.RootID(), 10)
	sess := store.Acquire(id)
	return sess, sess.Release
}

func TestAdvanceSubstringMatchBothDirections(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	// Keyword inside the input.
	res := m.Advance(sess, "i want to check my order please")
	assert.Equal(t, "orders_menu", res.StateID)
	assert.Equal(t, "root", res.PreviousID)
	assert.False(t, res.NoMatch)

	// Input inside the keyword.
	res = m.Advance(sess, "trac")
	assert.Equal(t, "order_track", res.StateID)
	assert.True(t, res.Leaf)
	assert.Equal(t, []string{"back"}, res.Options)
}

func TestAdvanceFirstMatchInInsertionOrderWins(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	// "order return" matches both root options; "order" was registered first.
	res := m.Advance(sess, "order return")
	assert.Equal(t, "orders_menu", res.StateID)
}

func TestAdvanceNoMatchLeavesCursorUnchanged(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	res := m.Advance(sess, "what is the meaning of life")
	assert.True(t, res.NoMatch)
	assert.Equal(t, "root", res.StateID)
	assert.Empty(t, res.PreviousID)
	assert.Equal(t, "root", sess.Cursor)
	assert.Equal(t, "Welcome! Choose a topic.", res.Response)
}

func TestAdvanceEmptyInputAlwaysNoMatch(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	for _, input := range []string{"", "   ", "\t\n"} {
		res := m.Advance(sess, input)
		assert.True(t, res.NoMatch, "input %q must not match", input)
		assert.Equal(t, "root", sess.Cursor)
	}
}

func TestAdvanceStaleCursorFallsBackToRoot(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	sess.Cursor = "deleted_state"
	res := m.Advance(sess, "order")
	assert.Equal(t, "orders_menu", res.StateID)
	assert.Equal(t, "root", res.PreviousID, "root is the effective current state")
}

func TestSetStateAndReset(t *testing.T) {
	m := testMachine(t)
	sess, done := acquire(t, m, "u1")
	defer done()

	assert.True(t, m.SetState(sess, "order_track"))
	assert.Equal(t, "order_track", sess.Cursor)

	assert.False(t, m.SetState(sess, "nonexistent"))
	assert.Equal(t, "order_track", sess.Cursor, "failed SetState must not move the cursor")

	m.Reset(sess)
	assert.Equal(t, "root", sess.Cursor)
}

func TestAddStateLastWriterWins(t *testing.T) {
	m := testMachine(t)
	m.AddState(model.DialogueState{ID: "orders_menu", Message: "Rewritten."})

	st, ok := m.State("orders_menu")
	require.True(t, ok)
	assert.Equal(t, "Rewritten.", st.Message)
	assert.Empty(t, st.Options)
}

func TestValidateConfigurationErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		m := NewMachine("root")
		m.AddState(model.DialogueState{ID: "orphan", Message: "hi"})
		assert.ErrorContains(t, m.Validate(), "no root state")
	})

	t.Run("dangling option target", func(t *testing.T) {
		m := NewMachine("root")
		m.AddState(model.DialogueState{
			ID:      "root",
			Message: "hi",
			Options: []model.StateOption{{Keyword: "go", Target: "nowhere"}},
		})
		assert.ErrorContains(t, m.Validate(), "unknown state")
	})
}
