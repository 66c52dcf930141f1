// Package engine wires the conversation pipeline together: intent
// normalization, FAQ short-circuiting, dialogue traversal, navigation
// history and next-action ranking, behind a single Handle entry point.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/content"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/dialogue"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/intent"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/recommend"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/session"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/faq"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/orders"
	logx "github.com/aarush-luthra/smart-customer-support-chatbot/pkg/logger"
)

const emptyInputReply = "Please enter a message."

// backCommands short-circuit the whole pipeline into stack navigation.
var backCommands = map[string]struct{}{
	"back":     {},
	"go back":  {},
	"previous": {},
	"undo":     {},
}

// orderIDPattern recognizes an order id typed on its own: the ORD- form or
// a bare five-digit number.
var orderIDPattern = regexp.MustCompile(`(?i)^(?:ord-\d+|\d{5})$`)

const defaultSuggestionLimit = 3

// Options carries the orchestrator's tunables and optional collaborators.
// Orders and Transcripts may be nil; the corresponding pipeline steps are
// skipped.
type Options struct {
	HistoryCapacity int
	SuggestionLimit int
	Orders          *orders.Store
	Transcripts     model.TranscriptRepository
}

// Engine is the conversation orchestrator. All content-derived structures
// (dialogue graph, synonym forest, FAQ map, action graph) are built once by
// Assemble and read-only afterwards; per-session mutation goes through the
// session store, which serializes it.
type Engine struct {
	machine    *dialogue.Machine
	normalizer *intent.Normalizer
	faqs       *faq.Map
	actions    *recommend.Graph
	sessions   *session.Store

	orders      *orders.Store
	transcripts model.TranscriptRepository

	suggestionLimit int
}

// Assemble builds an engine from a content document. A dialogue graph that
// fails validation (missing root, dangling option target) is a configuration
// error and aborts assembly.
func Assemble(defs *content.Definitions, opts Options) (*Engine, error) {
	machine := dialogue.NewMachine(defs.RootState)
	for _, st := range defs.States {
		machine.AddState(model.DialogueState{
			ID:      st.ID,
			Message: st.Message,
			Leaf:    st.Leaf,
			Options: st.Options,
		})
	}
	if err := machine.Validate(); err != nil {
		return nil, err
	}

	normalizer := intent.NewNormalizer()
	for _, group := range defs.Synonyms {
		for _, phrase := range group.Phrases {
			normalizer.Union(group.Canonical, phrase)
		}
	}

	faqs := faq.NewMap()
	for _, f := range defs.FAQs {
		faqs.Add(f.Keywords, f.Response, f.Category)
	}

	actions := recommend.NewGraph()
	for _, n := range defs.Actions.Nodes {
		actions.AddNode(n.ID, n.Label)
	}
	for _, e := range defs.Actions.Edges {
		actions.AddEdge(e.From, e.To, e.Weight, e.Label)
	}

	limit := opts.SuggestionLimit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	return &Engine{
		machine:         machine,
		normalizer:      normalizer,
		faqs:            faqs,
		actions:         actions,
		sessions:        session.NewStore(defs.RootState, opts.HistoryCapacity),
		orders:          opts.Orders,
		transcripts:     opts.Transcripts,
		suggestionLimit: limit,
	}, nil
}

// Handle processes one user message for a session. Pipeline order: input
// validation, back navigation, order-id lookup, intent normalization, FAQ
// short-circuit, dialogue transition. Degenerate input never errors; the
// only user-visible rejection is the empty-message reply.
func (e *Engine) Handle(ctx context.Context, sessionID, text string) model.Reply {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Reply{Response: emptyInputReply, Source: model.SourceValidation}
	}

	sess := e.sessions.Acquire(sessionID)
	defer sess.Release()
	e.seedHistory(sess)

	var reply model.Reply
	if _, ok := backCommands[strings.ToLower(trimmed)]; ok {
		reply = e.goBack(sess)
	} else if e.orders != nil && orderIDPattern.MatchString(trimmed) {
		reply = e.lookupOrder(sess, trimmed)
	} else {
		reply = e.converse(sess, trimmed)
	}

	e.record(ctx, sessionID, trimmed, reply.Response)
	return reply
}

// seedHistory puts the root snapshot at the bottom of a fresh session's
// history, so the stack always describes "where we are now" from the first
// message on.
func (e *Engine) seedHistory(sess *session.Session) {
	if sess.History.Len() > 0 {
		return
	}
	root, _ := e.machine.State(e.machine.RootID())
	sess.History.Push(root.ID, root.Message)
}

// goBack pops the current snapshot and rewinds the cursor to the one below
// it. With nothing left to rewind to (depth one), it falls back to a full
// reset to root.
func (e *Engine) goBack(sess *session.Session) model.Reply {
	if sess.History.Len() > 1 {
		sess.History.Pop()
		if prev, ok := sess.History.Peek(); ok && e.machine.SetState(sess, prev.StateID) {
			st, _ := e.machine.State(prev.StateID)
			return model.Reply{
				Response:     "Going back...\n\n" + st.Message,
				StateID:      st.ID,
				Options:      st.OptionKeywords(),
				HistoryDepth: sess.History.Len(),
				Suggestions:  e.actions.Suggest(st.ID, e.suggestionLimit),
				Source:       model.SourceNavigation,
			}
		}
	}

	e.machine.Reset(sess)
	sess.History.Clear()
	root, _ := e.machine.State(e.machine.RootID())
	sess.History.Push(root.ID, root.Message)
	return model.Reply{
		Response:     "Returning to main menu...\n\n" + root.Message,
		StateID:      root.ID,
		Options:      root.OptionKeywords(),
		HistoryDepth: sess.History.Len(),
		Source:       model.SourceNavigation,
	}
}

// lookupOrder answers an order id typed on its own with the order record.
// Pure data retrieval: the dialogue cursor and history are untouched.
// Tracking-focused dialogue states get the shipment view instead of the
// order summary.
func (e *Engine) lookupOrder(sess *session.Session, id string) model.Reply {
	current := e.machine.CurrentState(sess)

	response := fmt.Sprintf(
		"I couldn't find an order with ID **%s**. Please double-check the ID (it looks like ORD-12345) and try again.",
		strings.ToUpper(strings.TrimSpace(id)),
	)
	if o, ok := e.orders.Get(id); ok {
		if strings.Contains(current.ID, "track") {
			response = orders.FormatTracking(o)
		} else {
			response = orders.FormatOrder(o)
		}
	}

	return model.Reply{
		Response:     response,
		StateID:      current.ID,
		Options:      current.OptionKeywords(),
		HistoryDepth: sess.History.Len(),
		Suggestions:  e.actions.Suggest(current.ID, e.suggestionLimit),
		Source:       model.SourceOrder,
	}
}

// converse runs the normalize → FAQ → dialogue chain for ordinary input.
func (e *Engine) converse(sess *session.Session, text string) model.Reply {
	canonical, rewritten := e.normalizer.Normalize(text)

	if ans, ok := e.faqs.Lookup(canonical); ok {
		current := e.machine.CurrentState(sess)
		return model.Reply{
			Response:         ans.Response,
			StateID:          current.ID,
			Options:          current.OptionKeywords(),
			HistoryDepth:     sess.History.Len(),
			Suggestions:      e.actions.Suggest(current.ID, e.suggestionLimit),
			Source:           model.SourceFAQ,
			IntentNormalized: rewritten,
			MatchedKeyword:   ans.MatchedKeyword,
			Category:         ans.Category,
		}
	}

	result := e.machine.Advance(sess, canonical)
	sess.History.Push(result.StateID, result.Response)
	suggestions := e.actions.Suggest(result.StateID, e.suggestionLimit)

	response := result.Response
	if !result.NoMatch && len(suggestions) > 0 {
		var b strings.Builder
		b.WriteString(response)
		b.WriteString("\n\n**Quick Actions:**")
		for i, s := range suggestions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, s.Label)
		}
		response = b.String()
	}

	return model.Reply{
		Response:         response,
		StateID:          result.StateID,
		Options:          result.Options,
		HistoryDepth:     sess.History.Len(),
		Suggestions:      suggestions,
		NoMatch:          result.NoMatch,
		Source:           model.SourceDialogue,
		IntentNormalized: rewritten,
	}
}

// record appends the exchange to the session transcript. Transcripts are an
// observability surface; a write failure is logged, never surfaced.
func (e *Engine) record(ctx context.Context, sessionID, userText, botText string) {
	if e.transcripts == nil {
		return
	}
	if err := e.transcripts.AddMessage(ctx, sessionID, model.UserMessage(userText)); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to record user message")
		return
	}
	if err := e.transcripts.AddMessage(ctx, sessionID, model.AssistantMessage(botText)); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to record assistant message")
	}
}

// Reset returns a session to the root state: cursor to root, history reduced
// to the root snapshot, transcript cleared. The reply carries the root
// message so transports can show a fresh greeting.
func (e *Engine) Reset(ctx context.Context, sessionID string) model.Reply {
	sess := e.sessions.Acquire(sessionID)
	defer sess.Release()

	e.machine.Reset(sess)
	sess.History.Clear()
	root, _ := e.machine.State(e.machine.RootID())
	sess.History.Push(root.ID, root.Message)

	if e.transcripts != nil {
		if err := e.transcripts.ClearTranscript(ctx, sessionID); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear transcript")
		}
	}

	return model.Reply{
		Response:     root.Message,
		StateID:      root.ID,
		Options:      root.OptionKeywords(),
		HistoryDepth: sess.History.Len(),
		Source:       model.SourceNavigation,
	}
}

// Stats reports engine counters for observability.
func (e *Engine) Stats() model.Stats {
	return model.Stats{
		StateCount:   e.machine.StateCount(),
		SessionCount: e.sessions.Count(),
		FAQEntries:   e.faqs.Len(),
		ActionNodes:  e.actions.NodeCount(),
	}
}
