package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/inbound"
	inbounddto "github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	outbounddto "github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventStockReceived     = "StockReceived"
	EventDispatchRequested = "DispatchRequested"
)

var errUnknownProductCode = errors.New("unknown product code")

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// InventoryListener turns warehouse events from Kafka into ledger writes.
// Dispatches go through the same stock validation as any other outbound
// write; rejected events are logged and dropped.
type InventoryListener struct {
	consumer MessageReader
	inbound  inbound.UseCase
	outbound outbound.UseCase
	products product.Repository
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer MessageReader, in inbound.UseCase, out outbound.UseCase, products product.Repository, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		inbound:  in,
		outbound: out,
		products: products,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// StockReceivedPayload names the product by id or, failing that, by code.
type StockReceivedPayload struct {
	ProductID   string `json:"product_id"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"`
}

type DispatchRequestedPayload struct {
	Recipient string                `json:"recipient"`
	Address   string                `json:"address"`
	Date      string                `json:"date"`
	Items     []DispatchItemPayload `json:"items"`
}

type DispatchItemPayload struct {
	ProductID   string `json:"product_id"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	var err error
	switch event.EventType {
	case EventStockReceived:
		err = l.handleStockReceived(ctx, event.Payload)
	case EventDispatchRequested:
		err = l.handleDispatchRequested(ctx, event.Payload)
	default:
		return
	}

	if err != nil {
		var short *stock.InsufficientStockError
		if errors.As(err, &short) {
			l.logger.Warn("Dispatch rejected for insufficient stock",
				zap.String("event_id", event.EventID),
				zap.String("product_id", short.ProductID),
				zap.Int("requested", short.Requested),
				zap.Int("available", short.Available),
			)
			return
		}
		l.logger.Error("Failed to process event",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Processed event", zap.String("event_id", event.EventID), zap.String("event_type", event.EventType))
}

func (l *InventoryListener) handleStockReceived(ctx context.Context, raw json.RawMessage) error {
	var p StockReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	productID, err := l.resolveProduct(ctx, p.ProductID, p.ProductCode)
	if err != nil {
		return err
	}
	date, err := warehousev1.ParseDate(p.Date)
	if err != nil {
		return err
	}

	_, err = l.inbound.CreateInbound(ctx, &inbounddto.CreateInboundInput{
		ProductID: productID,
		Quantity:  p.Quantity,
		Date:      date,
	})
	return err
}

func (l *InventoryListener) handleDispatchRequested(ctx context.Context, raw json.RawMessage) error {
	var p DispatchRequestedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	date, err := warehousev1.ParseDate(p.Date)
	if err != nil {
		return err
	}

	items := make([]outbounddto.ItemInput, 0, len(p.Items))
	for _, it := range p.Items {
		productID, err := l.resolveProduct(ctx, it.ProductID, it.ProductCode)
		if err != nil {
			return err
		}
		items = append(items, outbounddto.ItemInput{ProductID: productID, Quantity: it.Quantity})
	}

	_, err = l.outbound.CreateOutbound(ctx, &outbounddto.CreateOutboundInput{
		Recipient: p.Recipient,
		Address:   p.Address,
		Date:      date,
		Items:     items,
	})
	return err
}

func (l *InventoryListener) resolveProduct(ctx context.Context, id, code string) (string, error) {
	if id != "" || code == "" {
		return id, nil
	}
	p, err := l.products.FindByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", errUnknownProductCode
	}
	return p.ID, nil
}
