package service

import (
	"context"
	"log"
	"time"

	"seedy/internal/model"
	"seedy/internal/pkg"
	"seedy/internal/repository/mysql"
)

// Sender delivers one outbox row; the relayer retries rows whose send fails.
type Sender func(ctx context.Context, ob *model.CommunityOutbox) error

// OutboxRelayer drains pending community events to the configured sender on
// a fixed interval.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender keys events by community so one community's events stay
// ordered within a partition.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.CommunityOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.CommunityID), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no brokers are configured.
func LogSender(ctx context.Context, ob *model.CommunityOutbox) error {
	log.Printf("OUTBOX SEND type=%s community=%d user=%d payload=%s", ob.EventType, ob.CommunityID, ob.UserID, ob.Payload)
	return nil
}
