package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/content"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/repo"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/orders"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	eng, err := Assemble(content.Default(), opts)
	require.NoError(t, err)
	return eng
}

func TestHandleCancelOrderEndToEnd(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	first := eng.Handle(ctx, "s1", "order")
	assert.Equal(t, "orders_menu", first.StateID)
	assert.Equal(t, 2, first.HistoryDepth, "root seed plus the new state")
	assert.False(t, first.NoMatch)
	assert.Contains(t, first.Response, "**Quick Actions:**")

	second := eng.Handle(ctx, "s1", "cancel my order")
	assert.Equal(t, "order_cancel", second.StateID)
	assert.True(t, second.IntentNormalized, "synonym phrase rewritten to its canonical token")
	assert.Equal(t, 3, second.HistoryDepth)

	require.LessOrEqual(t, len(second.Suggestions), 3)
	for i := 1; i < len(second.Suggestions); i++ {
		assert.GreaterOrEqual(t, second.Suggestions[i-1].Weight, second.Suggestions[i].Weight)
	}
	assert.Equal(t, "Start Return Instead", second.Suggestions[0].Label)
	assert.Equal(t, "40%", second.Suggestions[0].Percent)
}

func TestHandleSynonymEquivalentTransitions(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	eng.Handle(ctx, "a", "order")
	eng.Handle(ctx, "b", "order")

	viaCancel := eng.Handle(ctx, "a", "cancel")
	viaAbort := eng.Handle(ctx, "b", "abort")

	assert.Equal(t, "order_cancel", viaCancel.StateID)
	assert.Equal(t, viaCancel.StateID, viaAbort.StateID)
	assert.True(t, viaAbort.IntentNormalized)
	assert.False(t, viaCancel.IntentNormalized, "the canonical token itself is not a rewrite")
}

func TestHandleBackNavigation(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	back := eng.Handle(ctx, "s1", "back")

	assert.Equal(t, "root", back.StateID)
	assert.Equal(t, model.SourceNavigation, back.Source)
	assert.True(t, strings.HasPrefix(back.Response, "Going back..."))
	assert.Equal(t, 1, back.HistoryDepth)
}

func TestHandleBackAtDepthOneResets(t *testing.T) {
	eng := newTestEngine(t, Options{})

	back := eng.Handle(context.Background(), "fresh", "go back")

	assert.Equal(t, "root", back.StateID)
	assert.Equal(t, 1, back.HistoryDepth)
	assert.True(t, strings.HasPrefix(back.Response, "Returning to main menu..."))
}

func TestHandleEmptyInput(t *testing.T) {
	eng := newTestEngine(t, Options{})

	reply := eng.Handle(context.Background(), "s1", "   \t ")

	assert.Equal(t, "Please enter a message.", reply.Response)
	assert.Equal(t, model.SourceValidation, reply.Source)
	assert.Equal(t, 0, eng.Stats().SessionCount, "validation rejects before touching any session state")
}

func TestHandleFAQLeavesCursorUntouched(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	hit := eng.Handle(ctx, "s1", "shipping")

	assert.Equal(t, model.SourceFAQ, hit.Source)
	assert.Equal(t, "orders_menu", hit.StateID, "FAQ hit must not move the cursor")
	assert.Equal(t, "shipping", hit.Category)
	assert.Contains(t, hit.Response, "Standard shipping")
	assert.NotEmpty(t, hit.Suggestions, "current-state hints still attached")

	// The dialogue resumes from where the FAQ interrupted it.
	next := eng.Handle(ctx, "s1", "cancel")
	assert.Equal(t, "order_cancel", next.StateID)
}

func TestHandleFAQThroughSynonym(t *testing.T) {
	eng := newTestEngine(t, Options{})

	hit := eng.Handle(context.Background(), "s1", "refund")

	assert.Equal(t, model.SourceFAQ, hit.Source)
	assert.True(t, hit.IntentNormalized)
	assert.Equal(t, "return", hit.MatchedKeyword)
	assert.Equal(t, "returns", hit.Category)
}

func TestHandleOrderLookup(t *testing.T) {
	eng := newTestEngine(t, Options{Orders: orders.NewStore(orders.SampleOrders())})
	ctx := context.Background()

	found := eng.Handle(ctx, "s1", "ORD-12345")
	assert.Equal(t, model.SourceOrder, found.Source)
	assert.Contains(t, found.Response, "**Order Details**")
	assert.Equal(t, "root", found.StateID, "order lookup never moves the cursor")
	assert.Equal(t, 1, found.HistoryDepth)

	missing := eng.Handle(ctx, "s1", "99999")
	assert.Equal(t, model.SourceOrder, missing.Source)
	assert.Contains(t, missing.Response, "couldn't find an order")
}

func TestHandleOrderLookupTrackingView(t *testing.T) {
	eng := newTestEngine(t, Options{Orders: orders.NewStore(orders.SampleOrders())})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	eng.Handle(ctx, "s1", "status") // orders_menu -> order_track

	reply := eng.Handle(ctx, "s1", "ORD-12345")
	assert.Equal(t, "order_track", reply.StateID)
	assert.Contains(t, reply.Response, "**Tracking Information**")
}

func TestHandleNoMatchRepeatsState(t *testing.T) {
	eng := newTestEngine(t, Options{})

	reply := eng.Handle(context.Background(), "s1", "xyzzy")

	assert.True(t, reply.NoMatch)
	assert.Equal(t, "root", reply.StateID)
	assert.NotContains(t, reply.Response, "**Quick Actions:**", "no hints on an unmatched turn")
}

func TestResetReturnsToRoot(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	reply := eng.Reset(ctx, "s1")

	assert.Equal(t, "root", reply.StateID)
	assert.Equal(t, 1, reply.HistoryDepth)
	assert.Contains(t, reply.Response, "Welcome to Customer Support!")

	// Cursor really is back at root: a root option matches again.
	next := eng.Handle(ctx, "s1", "product")
	assert.Equal(t, "products_menu", next.StateID)
}

func TestHandleRecordsTranscript(t *testing.T) {
	transcripts := repo.NewMemoryTranscriptRepository()
	eng := newTestEngine(t, Options{Transcripts: transcripts})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	eng.Handle(ctx, "s1", "cancel")
	eng.Handle(ctx, "s1", " ") // validation replies are not part of the transcript

	count, err := transcripts.MessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	eng.Reset(ctx, "s1")
	count, err = transcripts.MessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStats(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	eng.Handle(ctx, "s1", "order")
	eng.Handle(ctx, "s2", "hello")

	stats := eng.Stats()
	assert.Equal(t, 21, stats.StateCount)
	assert.Equal(t, 2, stats.SessionCount)
	assert.Equal(t, 8, stats.FAQEntries)
	assert.Equal(t, 14, stats.ActionNodes, "edge endpoints count as nodes")
}

func TestAssembleRejectsBrokenGraph(t *testing.T) {
	defs := &content.Definitions{
		RootState: "root",
		States: []content.State{
			{ID: "root", Message: "hi", Options: []model.StateOption{{Keyword: "go", Target: "nowhere"}}},
		},
	}
	_, err := Assemble(defs, Options{})
	assert.Error(t, err)

	defs = &content.Definitions{
		RootState: "root",
		States:    []content.State{{ID: "lobby", Message: "hi"}},
	}
	_, err = Assemble(defs, Options{})
	assert.Error(t, err)
}
