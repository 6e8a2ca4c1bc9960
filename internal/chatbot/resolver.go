package chatbot

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/observability"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

var tracer = otel.Tracer("chatbot")

// Resolver steps, recorded in metrics and traces.
const (
	StepData  = "data"
	StepRules = "rules"
)

// Resolver produces a chat reply by walking a fixed fallback chain:
// data-driven lookup, then each configured provider in order, then the
// rule-based responder. The first non-empty answer wins and every step
// gets at most one attempt.
type Resolver struct {
	data      *DataResponder
	providers []Provider
	rules     *RuleResponder
	logger    *logging.Logger
}

// NewResolver wires the fallback chain. providers may be empty.
func NewResolver(data *DataResponder, providers []Provider, rules *RuleResponder, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{data: data, providers: providers, rules: rules, logger: logger}
}

// Resolve returns a non-empty reply and the name of the step that
// produced it. It never returns an error; the rule responder is the
// unconditional safety net.
func (r *Resolver) Resolve(ctx context.Context, message string) (reply, step string) {
	ctx, span := tracer.Start(ctx, "chatbot.resolve", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	reply, step = r.resolve(ctx, message)
	span.SetAttributes(attribute.String("chatbot.step", step))
	observability.ChatResolutions.WithLabelValues(step).Inc()
	return reply, step
}

func (r *Resolver) resolve(ctx context.Context, message string) (string, string) {
	if reply := r.data.Respond(ctx, message); reply != "" {
		return reply, StepData
	}
	for _, p := range r.providers {
		if reply := p.Reply(ctx, message); reply != "" {
			return reply, p.Name()
		}
		r.logger.Debug("provider yielded no answer", "provider", p.Name())
	}
	return r.rules.Respond(message), StepRules
}
