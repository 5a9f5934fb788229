package app

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/wmevent/internal/journal"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Replays are traced through the global provider, a no-op unless the
// embedding program installs one.
var tracer = otel.Tracer("wmevent/replay")

// Sessions lists the sessions of the journal.
func (app *Application) Sessions(ctx context.Context) ([]journal.Session, error) {
	if app.journal == nil {
		return nil, ErrNoJournal
	}
	return app.journal.Sessions(ctx)
}

// Replay feeds the events of a recorded session back through the window,
// one handler pass per event, and returns how many were replayed. The
// replayed events are simulated, so drags and clicks resolve the way they
// did when recorded.
func (app *Application) Replay(ctx context.Context, session uuid.UUID) (int, error) {
	if app.journal == nil {
		return 0, ErrNoJournal
	}
	ctx, span := tracer.Start(ctx, "wm.replay",
		trace.WithAttributes(attribute.String("session.id", session.String())),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	n := 0
	err := app.journal.Replay(ctx, session, func(e journal.Entry) error {
		if app.manager.Quitting() {
			return nil
		}
		app.window.Simulate(e.Event)
		app.manager.DoHandlers()
		n++
		return nil
	})
	if ev := app.window.LastHandled(); ev != nil {
		app.status.event(ev)
	}
	app.window.RequestRedraw()
	app.manager.DoNotifiers()
	app.log.Channel(wmlog.ChannelJournal).Info("replayed %d events of session %s", n, session)
	span.SetAttributes(attribute.Int("replay.events", n))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return n, err
}
