package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []amqp.Publishing
	keys       []string
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_PublishReservationEvent(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "venue.reservations")
	require.NoError(t, err)
	assert.Equal(t, []string{"venue.reservations:topic"}, ch.declared)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	res := &domain.Reservation{
		ID: 42, VenueID: 7, UserID: 100, SeatID: ptr.Ptr(int64(11)),
		StartAt: start, EndAt: start.Add(time.Hour), SeatCount: 1, Status: domain.ReservationActive,
	}

	event := NewReservationEvent(EventReservationCreated, res, start)
	require.NoError(t, p.PublishReservationEvent(context.Background(), event))

	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{"venue.reservations/reservation.created"}, ch.keys)
	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var decoded ReservationEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)
	assert.Nil(t, decoded.TableID)
}

func TestPublisher_Errors(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := NewPublisher(ch, "x")
	assert.ErrorIs(t, err, ErrPublish)
	assert.True(t, ch.closed)

	ch = &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := NewPublisher(ch, "x")
	require.NoError(t, err)
	err = p.PublishReservationEvent(context.Background(), ReservationEvent{Type: EventReservationCancelled})
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
