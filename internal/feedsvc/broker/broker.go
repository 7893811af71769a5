package broker

import (
	"encoding/json"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker consumes ledger events from the game service and hands each one to
// Relay, which fans it out to the watching sockets.
type Broker struct {
	Conn  *nats.Conn
	Relay func(comm.LedgerEvent) int
}

func NewBroker(conn *nats.Conn, fncRelay func(comm.LedgerEvent) int) *Broker {
	return &Broker{
		Conn:  conn,
		Relay: fncRelay,
	}
}

// consume ledger events from game service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	b.HandleEvent(msgNats.Subject, msgNats.Data)
}

// HandleEvent decodes one ledger event and relays it.
func (b *Broker) HandleEvent(subject string, data []byte) {
	event := comm.LedgerEvent{}
	if err := json.Unmarshal(data, &event); err != nil {
		log.Errorf("Error: malformed ledger event on %s: %s", subject, err)
		return
	}

	switch event.Type {
	case comm.EventGameCreated, comm.EventMoveAppended, comm.EventGameFinished:
		n := b.Relay(event)
		log.Debugf("relayed %s of game %d to %d sockets", event.Type, event.GameID, n)
	default:
		log.Errorf("Unknown ledger event %q on %s", event.Type, subject)
	}
}
