package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/mocks"
	"cafeteria-orders/order-svc/internal/service"
	"cafeteria-orders/order-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func placedEvent() domain.OrderEvent {
	return domain.OrderEvent{
		Type:          domain.EventOrderPlaced,
		OrderID:       orderID,
		CustomerEmail: "dana@example.com",
		OrderDate:     "2026-10-15",
		Items:         []domain.EventItem{{MenuItemID: "1", Name: "Omelette sandwich", Quantity: 2}},
	}
}

func TestConsumer_HandleEvent(t *testing.T) {
	tests := []struct {
		name       string
		event      func() domain.OrderEvent
		setupStats func(*mocks.PopularityStore)
		setupMail  func(*mocks.Confirmer)
	}{
		{
			name:  "first delivery counts and confirms",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", placedEvent().Items).Return(nil).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(true, nil).Once()
			},
			setupMail: func(m *mocks.Confirmer) {
				m.On("SendConfirmation", mock.Anything, orderID).Return(true, nil).Once()
			},
		},
		{
			name:  "redelivery does nothing",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(false, nil).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(false, nil).Once()
			},
			setupMail: func(m *mocks.Confirmer) {},
		},
		{
			name: "no email only counts",
			event: func() domain.OrderEvent {
				e := placedEvent()
				e.CustomerEmail = ""
				return e
			},
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(nil).Once()
			},
			setupMail: func(m *mocks.Confirmer) {},
		},
		{
			name:  "redis down still counts and confirms",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(false, errors.New("redis down")).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(errors.New("redis down")).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(false, errors.New("redis down")).Once()
			},
			setupMail: func(m *mocks.Confirmer) {
				m.On("SendConfirmation", mock.Anything, orderID).Return(true, nil).Once()
			},
		},
		{
			name:  "mailer disabled",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(nil).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(true, nil).Once()
			},
			setupMail: func(m *mocks.Confirmer) {
				m.On("SendConfirmation", mock.Anything, orderID).Return(false, mailer.ErrDisabled).Once()
			},
		},
		{
			name:  "failed send releases the marker",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(nil).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(true, nil).Once()
				m.On("ClearNotified", mock.Anything, "confirmation", orderID).Return(nil).Once()
			},
			setupMail: func(m *mocks.Confirmer) {
				m.On("SendConfirmation", mock.Anything, orderID).Return(false, errors.New("smtp timeout")).Once()
			},
		},
		{
			name:  "failed send without a marker clears nothing",
			event: placedEvent,
			setupStats: func(m *mocks.PopularityStore) {
				m.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
				m.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(nil).Once()
				m.On("MarkNotified", mock.Anything, "confirmation", orderID).Return(false, errors.New("redis down")).Once()
			},
			setupMail: func(m *mocks.Confirmer) {
				m.On("SendConfirmation", mock.Anything, orderID).Return(false, errors.New("smtp timeout")).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			stats := mocks.NewPopularityStore(t)
			confirmer := mocks.NewConfirmer(t)
			testCase.setupStats(stats)
			testCase.setupMail(confirmer)

			consumer := service.NewConsumer(nil, stats, confirmer)
			consumer.HandleEvent(context.Background(), testCase.event())
		})
	}
}

func TestConsumer_RetriesConfirmationAfterFailedSend(t *testing.T) {
	_, client := newMiniredis(t)
	stats := storage.NewRedisStats(client)
	confirmer := mocks.NewConfirmer(t)
	confirmer.On("SendConfirmation", mock.Anything, orderID).Return(false, errors.New("smtp timeout")).Once()
	confirmer.On("SendConfirmation", mock.Anything, orderID).Return(true, nil).Once()

	consumer := service.NewConsumer(nil, stats, confirmer)
	consumer.HandleEvent(context.Background(), placedEvent())
	consumer.HandleEvent(context.Background(), placedEvent())
	// Sent once, so a third delivery is a no-op.
	consumer.HandleEvent(context.Background(), placedEvent())
}

func TestConsumer_InvalidEventType(t *testing.T) {
	stats := mocks.NewPopularityStore(t)
	confirmer := mocks.NewConfirmer(t)
	consumer := service.NewConsumer(nil, stats, confirmer)

	event := placedEvent()
	event.Type = "order_deleted"
	consumer.HandleEvent(context.Background(), event)

	stats.AssertNotCalled(t, "MarkNotified", mock.Anything, mock.Anything, mock.Anything)
	confirmer.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
}

func TestConsumer_StartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := mocks.NewMessageReader(t)
	stats := mocks.NewPopularityStore(t)

	payload, _ := json.Marshal(placedEvent())
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte("not json")}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: payload}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()
	stats.On("MarkNotified", mock.Anything, "counted", orderID).Return(true, nil).Once()
	stats.On("IncrementItems", mock.Anything, "2026-10-15", mock.Anything).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, stats, nil).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	assert.Error(t, ctx.Err())
}
