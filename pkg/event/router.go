package event

import "log/slog"

// HandlerFunc processes a single named event.
type HandlerFunc func(name string, payload Payload)

// Router is a string-keyed dispatch table. Named handlers registered
// with Handle run first; events with no named handler fall through to
// the fallthrough chain in registration order. Dispatch is synchronous
// and single-threaded: handlers run to completion inside Notify, which
// matches the one-input-per-tick play loop.
type Router struct {
	handlers  map[string]HandlerFunc
	fallbacks []HandlerFunc
	logger    *slog.Logger
}

// NewRouter creates an empty router. A nil logger disables debug
// tracing of dispatched events.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Handle registers h for an exact event name, replacing any prior
// handler for that name.
func (r *Router) Handle(name string, h HandlerFunc) {
	r.handlers[name] = h
}

// Fallthrough appends h to the chain that receives events with no
// named handler.
func (r *Router) Fallthrough(h HandlerFunc) {
	r.fallbacks = append(r.fallbacks, h)
}

// Notify dispatches one event. Unknown names with no fallthrough
// consumers are dropped silently; nothing here ever errors, matching
// permissive event-bus semantics.
func (r *Router) Notify(name string, payload Payload) {
	if r.logger != nil {
		r.logger.Debug("Dispatching event", "event", name, "payload", payload)
	}

	if h, ok := r.handlers[name]; ok {
		h(name, payload)
		return
	}

	for _, h := range r.fallbacks {
		h(name, payload)
	}
}

var _ Sink = (*Router)(nil)
