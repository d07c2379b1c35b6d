package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// FlashSessionName is the cookie name of the flash session.
const FlashSessionName = "item_flash"

func init() {
	// Flash values are stored as []interface{} under a single session key.
	gob.Register([]interface{}{})
}

// Flashes adds and consumes one-shot messages on top of a sessions.Store.
type Flashes struct {
	store sessions.Store
}

func NewFlashes(store sessions.Store) *Flashes {
	return &Flashes{store: store}
}

// Add queues msg for the next request. Call before writing the response.
func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, msg string) error {
	s, err := f.store.Get(r, FlashSessionName)
	if err != nil {
		return fmt.Errorf("flash: get session: %w", err)
	}
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("flash: save session: %w", err)
	}
	return nil
}

// Pop returns the queued messages and clears them. Call before writing the
// response body so the updated cookie can still be sent.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) ([]string, error) {
	s, err := f.store.Get(r, FlashSessionName)
	if err != nil {
		return nil, fmt.Errorf("flash: get session: %w", err)
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return []string{}, nil
	}
	if err := s.Save(r, w); err != nil {
		return nil, fmt.Errorf("flash: save session: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out, nil
}
