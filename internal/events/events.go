// Package events описывает события жизненного цикла пользователей и документов
// и публикует их в RabbitMQ. Ключ маршрутизации совпадает с типом события.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/magabrotheeeer/sheets-api/internal/models"
	"github.com/magabrotheeeer/sheets-api/internal/rabbitmq"
)

// Типы событий.
const (
	TypeUserRegistered = "user.registered"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// Event: сообщение о событии.
type Event struct {
	Type       string         `json:"type"`
	UserUID    string         `json:"userId"`
	DocumentID string         `json:"documentId,omitempty"`
	Kind       models.Kind    `json:"kind,omitempty"`
	Totals     *models.Totals `json:"totals,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// DocumentEvent строит событие по документу, например "sheet.created".
func DocumentEvent(action, userUID string, doc *models.Document) Event {
	totals := doc.Totals
	return Event{
		Type:       string(doc.Kind) + "." + action,
		UserUID:    userUID,
		DocumentID: doc.ID,
		Kind:       doc.Kind,
		Totals:     &totals,
		OccurredAt: time.Now().UTC(),
	}
}

// UserRegistered строит событие регистрации.
func UserRegistered(userUID string) Event {
	return Event{
		Type:       TypeUserRegistered,
		UserUID:    userUID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher публикует события в exchange. Канал AMQP не потокобезопасен,
// поэтому публикации сериализуются мьютексом.
type Publisher struct {
	mu       sync.Mutex
	ch       rabbitmq.Channel
	exchange string
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch rabbitmq.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// Publish отправляет событие.
func (p *Publisher) Publish(ctx context.Context, e Event) error {
	const op = "events.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, e.Type, e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Nop используется, когда RabbitMQ не настроен.
type Nop struct{}

// Publish ничего не делает.
func (Nop) Publish(context.Context, Event) error { return nil }
