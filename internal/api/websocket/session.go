package websocket

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

// Message types sent by the server on a session connection.
const (
	TypeSession = "session"
	TypeView    = "view"
	TypeError   = "error"
)

// ClientMessage is an input event sent by the browser.
//
//	{"type":"query","query":"blue"}          debounced text input
//	{"type":"race","value":"Dragon"}         facet selection ("" clears)
//	{"type":"criteria","criteria":{...}}     replace all criteria
//	{"type":"page","page":3}                 jump to a page
//	{"type":"next"} {"type":"prev"} {"type":"view"}
type ClientMessage struct {
	Type     string            `json:"type"`
	Query    string            `json:"query,omitempty"`
	Value    string            `json:"value,omitempty"`
	Page     int               `json:"page,omitempty"`
	Criteria *catalog.Criteria `json:"criteria,omitempty"`
}

// SessionStarted is the payload of the first message on a session connection.
type SessionStarted struct {
	ID     string         `json:"id"`
	View   session.View   `json:"view"`
	Facets catalog.Facets `json:"facets"`
}

func (c *Client) startSession(m *session.Manager) {
	h := m.Create()
	c.session = h

	// Runs under the session lock, so it only queues.
	h.OnChange(func(v session.View) {
		c.sendEvent(Event{Type: TypeView, Data: v})
	})
	c.sendEvent(Event{Type: TypeSession, Data: SessionStarted{ID: h.ID(), View: h.View(), Facets: h.Facets()}})
}

func (c *Client) endSession() {
	if c.session != nil && c.hub.sessions != nil {
		c.hub.sessions.Delete(c.session.ID())
	}
}

func (c *Client) handleMessage(raw []byte) {
	if c.session == nil {
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError(fmt.Errorf("invalid message: %w", err))
		return
	}

	if err := applyMessage(c.session, msg, c.sendView); err != nil {
		c.sendError(err)
	}
}

func (c *Client) sendView(v session.View) {
	c.sendEvent(Event{Type: TypeView, Data: v})
}

func (c *Client) sendError(err error) {
	log.Printf("[WebSocketHub] Session %s: %v", c.session.ID(), err)
	c.sendEvent(Event{Type: TypeError, Data: map[string]string{"message": err.Error()}})
}

// applyMessage routes a client message to the session input. State changes
// reach the client through the session's change listener; push is only used
// to answer an explicit view request.
func applyMessage(h *session.Handle, msg ClientMessage, push func(session.View)) error {
	switch msg.Type {
	case "query":
		h.Update(func(in *session.Input) { in.TypeQuery(msg.Query) })
	case "criteria":
		if msg.Criteria == nil {
			return fmt.Errorf("criteria message without criteria")
		}
		h.Update(func(in *session.Input) { in.SetCriteria(*msg.Criteria) })
	case "type":
		h.Update(func(in *session.Input) { in.SelectType(msg.Value) })
	case "race":
		h.Update(func(in *session.Input) { in.SelectRace(msg.Value) })
	case "archetype":
		h.Update(func(in *session.Input) { in.SelectArchetype(msg.Value) })
	case "page":
		h.Update(func(in *session.Input) { in.GoToPage(msg.Page) })
	case "next":
		h.Update(func(in *session.Input) { in.NextPage() })
	case "prev":
		h.Update(func(in *session.Input) { in.PrevPage() })
	case "view":
		push(h.View())
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}
