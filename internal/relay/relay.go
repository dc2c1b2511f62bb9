package relay

import (
	"context"
	"time"

	"conversion-bridge/internal/capi"
	"conversion-bridge/internal/metrics"
	"conversion-bridge/internal/model"
	"conversion-bridge/internal/util"

	"go.uber.org/zap"
)

const (
	eventNamePageView         = "PageView"
	eventNameInitiateCheckout = "InitiateCheckout"
	eventNamePurchase         = "Purchase"

	currencyBRL         = "BRL"
	actionSourceWebsite = "website"
)

// Outcome classifies what the relay did with a notification.
type Outcome string

const (
	OutcomeForwarded Outcome = "forwarded" // conversion delivered downstream
	OutcomeFailed    Outcome = "failed"    // delivery attempted, downstream error (absorbed)
	OutcomeFiltered  Outcome = "filtered"  // purchase description matched no keyword
	OutcomeIgnored   Outcome = "ignored"   // unrecognized event
)

type Config struct {
	Keywords       []string
	EventSourceURL string
}

// Relay maps authenticated notifications to conversion events and hands them
// to the forwarder. It absorbs every downstream failure: callers only learn
// the Outcome, never an error.
type Relay struct {
	fwd            capi.Forwarder
	filter         *KeywordFilter
	eventSourceURL string
	log            *zap.Logger
}

func New(fwd capi.Forwarder, cfg Config, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		fwd:            fwd,
		filter:         NewKeywordFilter(cfg.Keywords),
		eventSourceURL: cfg.EventSourceURL,
		log:            log,
	}
}

// Process dispatches on the notification event and returns how it was
// handled. It blocks until any outbound delivery attempt completes; the HTTP
// layer runs it detached so the inbound response never waits on it.
func (r *Relay) Process(ctx context.Context, n model.Notification) Outcome {
	var out Outcome

	switch n.Event {
	case model.EventCustomerCreated:
		out = r.forward(ctx, eventNamePageView, hashCustomer(n.Customer), model.CustomData{})

	case model.EventPaymentCreated:
		out = r.forward(ctx, eventNameInitiateCheckout, paymentUserData(n.Payment), paymentCustomData(n.Payment))

	case model.EventPaymentReceived, model.EventPaymentConfirmed:
		out = r.processPurchase(ctx, n.Payment)

	default:
		r.log.Info("unrecognized event, ignoring", zap.String("event", n.Event.String()))
		out = OutcomeIgnored
	}

	metrics.NotificationsTotal.WithLabelValues(n.Event.String(), string(out)).Inc()

	return out
}

func (r *Relay) processPurchase(ctx context.Context, p *model.Payment) Outcome {
	var id, description string
	if p != nil {
		id = p.ID
		description = p.Description
	}

	r.log.Info("payment notification received",
		zap.String("payment_id", id),
		zap.String("description", description))

	if !r.filter.Matches(description) {
		r.log.Info("description matched no configured keyword, skipping",
			zap.String("payment_id", id))
		return OutcomeFiltered
	}

	return r.forward(ctx, eventNamePurchase, paymentUserData(p), paymentCustomData(p))
}

func (r *Relay) forward(ctx context.Context, eventName string, ud model.UserData, cd model.CustomData) Outcome {
	ev := model.ServerEvent{
		EventName:      eventName,
		EventTime:      time.Now().Unix(),
		EventID:        util.NewEventID(),
		EventSourceURL: r.eventSourceURL,
		ActionSource:   actionSourceWebsite,
		UserData:       ud,
		CustomData:     cd,
	}

	if err := r.fwd.Send(ctx, ev); err != nil {
		metrics.ConversionsTotal.WithLabelValues(eventName, "failed").Inc()
		r.log.Error("conversion delivery failed",
			zap.String("event_name", eventName),
			zap.String("event_id", ev.EventID),
			zap.Error(err))
		return OutcomeFailed
	}

	metrics.ConversionsTotal.WithLabelValues(eventName, "sent").Inc()
	r.log.Info("conversion delivered",
		zap.String("event_name", eventName),
		zap.String("event_id", ev.EventID))

	return OutcomeForwarded
}

// hashCustomer builds hashed user data. A nil customer yields an empty
// mapping; a present customer with a missing field yields a null placeholder
// for that field, never a hash of the empty string.
func hashCustomer(c *model.Customer) model.UserData {
	if c == nil {
		return model.UserData{}
	}
	return model.UserData{
		Em: []*string{hashedOrNil(util.NormalizeEmail(c.Email))},
		Ph: []*string{hashedOrNil(util.NormalizePhone(c.Phone))},
	}
}

func hashedOrNil(normalized string) *string {
	if normalized == "" {
		return nil
	}
	h := util.SHA256Hex(normalized)
	return &h
}

func paymentUserData(p *model.Payment) model.UserData {
	if p == nil {
		return model.UserData{}
	}
	return hashCustomer(p.Customer)
}

func paymentCustomData(p *model.Payment) model.CustomData {
	if p == nil {
		return model.CustomData{}
	}
	v := p.Value
	return model.CustomData{Value: &v, Currency: currencyBRL}
}
