package ordering

import (
	"context"
	"fmt"

	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderMetrics records order outcomes
type OrderMetrics interface {
	ObservePlaced(size string, portions int, total float64)
	ObserveCancelled(portions int)
	ObserveRejected(stockRaced bool)
}

// OrderMetricsHandler feeds order events into OrderMetrics
type OrderMetricsHandler struct {
	metrics OrderMetrics
	logger  *zap.Logger
}

// NewOrderMetricsHandler creates a new handler for order events
func NewOrderMetricsHandler(metrics OrderMetrics, logger *zap.Logger) *OrderMetricsHandler {
	return &OrderMetricsHandler{metrics: metrics, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderMetricsHandler) EventTypes() []string {
	return []string{
		ordering.EventTypeOrderPlaced,
		ordering.EventTypeOrderCancelled,
		ordering.EventTypeOrderRejected,
	}
}

// Handle records the event
func (h *OrderMetricsHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ordering.OrderPlacedEvent:
		h.metrics.ObservePlaced(e.Size, e.Portions, PriceValue(e.TotalPrice))
	case *ordering.OrderCancelledEvent:
		h.metrics.ObserveCancelled(e.Portions)
	case *ordering.OrderRejectedEvent:
		h.metrics.ObserveRejected(e.StockRaced)
	default:
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

var _ shared.EventHandler = (*OrderMetricsHandler)(nil)
