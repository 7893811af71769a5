package broker

import (
	"context"
	"testing"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), comm.LedgerEvent{Type: comm.EventGameCreated, GameID: 1}))
}

func TestLedgerSubject(t *testing.T) {
	assert.Equal(t, "ledger.game.42", comm.LedgerSubject(42))
	assert.Equal(t, "ledger.game.*", comm.LedgerSubjectAll)
}
