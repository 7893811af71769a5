package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Publisher sends committed ledger events to NATS, one subject per game, for
// the feed service and any other downstream consumer.
type Publisher struct {
	Conn *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{Conn: nc}
}

func (p *Publisher) Publish(ctx context.Context, event comm.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	topic := comm.LedgerSubject(event.GameID)
	if err := p.Conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	log.Debugf("published %s to topic %s", event.Type, topic)
	return nil
}

// NopPublisher is used when no NATS server is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, comm.LedgerEvent) error { return nil }
