package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/moaworks/moa-router/plugin/nlu/intent"
)

// defaultTimeout bounds the combined embedding + LLM stages. Rule evaluation
// is synchronous and finishes in microseconds, so only the network stages
// are cancellable.
const defaultTimeout = 900 * time.Millisecond

// Config configures the weighted decider. Both collaborators are optional;
// with neither set, Decide degrades to the rule-only decision with scores
// attached.
type Config struct {
	Embeddings EmbeddingClient
	Chat       ChatClient
	Timeout    time.Duration
}

// Decider implements RouterService.
// Layer 1: ordered rules (always). Strong rules short-circuit here.
// Layer 2: embedding similarity against fixed prototypes, margin-gated.
// Layer 3: LLM JSON classification, suppressed when a strong rule fired.
type Decider struct {
	rules   *Rules
	protos  *prototypeIndex
	llm     *llmClassifier
	timeout time.Duration
}

// NewDecider creates a decider over the given analyzer and collaborators.
func NewDecider(analyzer *intent.Analyzer, cfg Config) *Decider {
	d := &Decider{
		rules:   NewRules(analyzer),
		timeout: cfg.Timeout,
	}
	if d.timeout <= 0 {
		d.timeout = defaultTimeout
	}
	if cfg.Embeddings != nil {
		d.protos = newPrototypeIndex(cfg.Embeddings)
	}
	if cfg.Chat != nil {
		d.llm = &llmClassifier{client: cfg.Chat}
	}
	return d
}

// DecideByRules returns the synchronous rule-only decision.
func (d *Decider) DecideByRules(text string, meta *Meta) *RouteDecision {
	return d.rules.Decide(text, meta)
}

// Decide blends the rule decision with the optional embedding and LLM
// signals. It never fails: any collaborator error, timeout or unparsable
// answer folds into "signal absent" and the best decision so far stands.
//
// Ambiguity only ever decreases as signals accumulate; a strong rule skips
// the costly stages entirely and halves its own ambiguity instead.
func (d *Decider) Decide(ctx context.Context, text string, meta *Meta) *WeightedDecision {
	start := time.Now()

	rule := d.rules.Decide(text, meta)
	ruleScore := 1 - rule.Ambiguity
	decision := &WeightedDecision{
		RouteDecision: *rule,
		Scores:        Scores{Rule: ruleScore},
	}

	if IsStrong(rule) {
		decision.Ambiguity = rule.Ambiguity / 2
		slog.Debug("route short-circuited by strong rule",
			"reasons", decision.Reasons,
			"route", decision.Route,
			"latency_ms", time.Since(start).Milliseconds())
		return decision
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	signals := []float64{ruleScore}

	if d.protos != nil {
		if proto, sim, ok := d.protos.best(ctx, text); ok {
			decision.Scores.Embed = &sim
			signals = append(signals, sim)
			// Sub-margin similarity is noise: record the score but leave
			// the decision alone.
			if sim >= embedMargin && (proto.route != decision.Route || proto.web != decision.Web) {
				decision.Route = proto.route
				decision.Web = proto.web
				decision.Reasons = append(decision.Reasons, ReasonEmbedOverride+":"+proto.name)
			}
			decision.Ambiguity = lowered(decision.Ambiguity, signals)
		}
	}

	if d.llm != nil {
		if parsed, ok := d.llm.classify(ctx, text); ok {
			decision.Scores.LLM = &parsed.Confidence
			signals = append(signals, parsed.Confidence)
			if IsStrong(&decision.RouteDecision) {
				decision.Reasons = append(decision.Reasons, ReasonLLMIgnoredStrongRule)
			} else if route := taskRoutes[parsed.Task]; route != decision.Route || parsed.NeedsWeb != decision.Web {
				decision.Route = route
				decision.Web = parsed.NeedsWeb
				decision.Reasons = append(decision.Reasons, ReasonLLMOverride+":"+parsed.Task)
			}
			decision.Ambiguity = lowered(decision.Ambiguity, signals)
		}
	}

	slog.Debug("route decided",
		"route", decision.Route,
		"web", decision.Web,
		"reasons", decision.Reasons,
		"ambiguity", decision.Ambiguity,
		"latency_ms", time.Since(start).Milliseconds())

	return decision
}

// lowered recomputes ambiguity as 1 - mean(signals), clamped so that adding
// evidence never raises it.
func lowered(current float64, signals []float64) float64 {
	var sum float64
	for _, s := range signals {
		sum += s
	}
	next := 1 - sum/float64(len(signals))
	if next < 0 {
		next = 0
	}
	if next < current {
		return next
	}
	return current
}

// Ensure Decider implements RouterService.
var _ RouterService = (*Decider)(nil)
