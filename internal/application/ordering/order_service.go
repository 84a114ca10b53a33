package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// errNotCancellable is returned for orders that already left the confirmed state
var errNotCancellable = shared.NewDomainError("INVALID_STATE", "Cannot cancel order in its current state")

// OrderService validates, places and cancels orders. Submission and
// cancellation each run in a single transaction so stock counters and
// order rows always change together.
type OrderService struct {
	catalogRepo    catalog.Repository
	orderRepo      ordering.OrderRepository
	txScope        TransactionScope
	validator      *Validator
	cancelPolicy   ordering.CancelPolicy
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	catalogRepo catalog.Repository,
	orderRepo ordering.OrderRepository,
	txScope TransactionScope,
	cancelPolicy ordering.CancelPolicy,
) *OrderService {
	return &OrderService{
		catalogRepo:  catalogRepo,
		orderRepo:    orderRepo,
		txScope:      txScope,
		validator:    NewValidator(),
		cancelPolicy: cancelPolicy,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ValidateOrder checks a configuration without reserving anything.
// The answer is advisory; SubmitOrder validates again under its transaction.
func (s *OrderService) ValidateOrder(ctx context.Context, req ValidateOrderRequest) (*ValidationResult, error) {
	return s.validator.Validate(ctx, s.catalogRepo, req)
}

// SubmitOrder validates the configuration and, when it is legal, stores the
// order and takes its portions from stock atomically. A failed rule yields
// a *shared.ValidationError and leaves the database untouched.
func (s *OrderService) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "submit",
		telemetry.SpanAttrUserID, req.UserID,
		telemetry.SpanAttrDishID, req.DishID,
		telemetry.SpanAttrSize, req.Size,
	)
	defer span.End()

	var (
		order    *ordering.Order
		verdict  *checked
		rejected *shared.ValidationError
		raced    bool
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.validator.check(ctx, repos.CatalogRepo(), req.configuration())
		if err != nil {
			return err
		}
		if !c.result.Valid {
			rejected = shared.NewValidationError(c.result.Errors...)
			return rejected
		}

		lines := make([]ordering.OrderLine, 0, len(c.distinct))
		for _, id := range c.distinct {
			lines = append(lines, ordering.OrderLine{
				IngredientID: id,
				Quantity:     c.quantities[id],
				UnitPrice:    c.ingredients[id].Price,
			})
		}

		o, err := ordering.NewOrder(req.UserID, req.DishID, req.Size, lines, *c.result.TotalPrice, req.Used2FA)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, id := range c.distinct {
			ing := c.ingredients[id]
			if ing.IsUnlimited() {
				continue
			}
			err := repos.StockRepo().DecrementPortions(ctx, id, c.quantities[id])
			if errors.Is(err, shared.ErrStockConflict) {
				raced = true
				rejected, err = s.stockConflict(ctx, repos.CatalogRepo(), ing, c.quantities[id])
				if err != nil {
					return err
				}
				return rejected
			}
			if err != nil {
				return fmt.Errorf("decrement %s: %w", ing.Name, err)
			}
		}

		o.MarkPlaced()
		order = o
		verdict = c
		return nil
	})

	log := logger.L(ctx)
	if err != nil {
		if rejected != nil && errors.Is(err, rejected) {
			log.Info("order rejected",
				zap.Uint("user_id", req.UserID),
				zap.Strings("reasons", rejected.Errors),
				zap.Bool("stock_raced", raced),
			)
			telemetry.AddEvent(span, "order_rejected", "stock_raced", raced)
			s.publish(ctx, ordering.NewOrderRejectedEvent(req.UserID, rejected.Errors, raced))
			return nil, err
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, order.ID)

	log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
	)
	s.publish(ctx, order.GetDomainEvents()...)
	order.ClearDomainEvents()

	ingredientNames := make(map[uint]string, len(verdict.ingredients))
	for id, ing := range verdict.ingredients {
		ingredientNames[id] = ing.Name
	}
	resp := ToOrderResponse(order, map[uint]string{verdict.dish.ID: verdict.dish.Name}, ingredientNames, true)
	return &resp, nil
}

// stockConflict re-reads the ingredient that lost the race and reports the
// shortfall the same way validation does.
func (s *OrderService) stockConflict(ctx context.Context, repo catalog.Repository, ing catalog.Ingredient, requested int) (*shared.ValidationError, error) {
	fresh, err := repo.FindIngredientsByIDs(ctx, []uint{ing.ID})
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", ing.Name, err)
	}
	if len(fresh) == 1 {
		ing = fresh[0]
	}
	return shared.NewValidationError(notEnoughMessage(ing, requested)), nil
}

// CancelOrder cancels a confirmed order of the requesting user and gives
// its portions back to stock. Orders of other users are reported as not
// found.
func (s *OrderService) CancelOrder(ctx context.Context, req CancelOrderRequest) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "cancel",
		telemetry.SpanAttrOrderID, req.OrderID,
		telemetry.SpanAttrUserID, req.UserID,
		telemetry.SpanAttrAuthLevel, req.AuthLevel.String(),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return err
	}
	if !order.BelongsTo(req.UserID) {
		return shared.ErrNotFound
	}
	if !order.IsConfirmed() {
		return errNotCancellable
	}
	if err := s.cancelPolicy.Authorize(order, req.AuthLevel); err != nil {
		return err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.OrderRepo().MarkCancelled(ctx, order); err != nil {
			if errors.Is(err, shared.ErrInvalidState) {
				return errNotCancellable
			}
			return fmt.Errorf("mark cancelled: %w", err)
		}
		for _, line := range order.Lines {
			if err := repos.StockRepo().RestorePortions(ctx, line.IngredientID, line.Quantity); err != nil {
				return fmt.Errorf("restore ingredient %d: %w", line.IngredientID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.L(ctx).Info("order cancelled",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.String("auth_level", req.AuthLevel.String()),
	)
	s.publish(ctx, order.GetDomainEvents()...)
	order.ClearDomainEvents()
	return nil
}

// ListOrders returns the user's orders without ingredient lines, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]OrderResponse, error) {
	return s.listOrders(ctx, userID, false)
}

// OrderHistory returns the user's orders with their ingredient lines, newest first
func (s *OrderService) OrderHistory(ctx context.Context, userID uint) ([]OrderResponse, error) {
	return s.listOrders(ctx, userID, true)
}

func (s *OrderService) listOrders(ctx context.Context, userID uint, withLines bool) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dishes, err := s.catalogRepo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	dishNames := make(map[uint]string, len(dishes))
	for _, d := range dishes {
		dishNames[d.ID] = d.Name
	}

	var ingredientNames map[uint]string
	if withLines {
		ingredients, err := s.catalogRepo.ListIngredients(ctx)
		if err != nil {
			return nil, err
		}
		ingredientNames = make(map[uint]string, len(ingredients))
		for _, ing := range ingredients {
			ingredientNames[ing.ID] = ing.Name
		}
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i], dishNames, ingredientNames, withLines))
	}
	return responses, nil
}

// publish hands events to the bus. Subscribers only observe; a failing
// handler never undoes a committed order.
func (s *OrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Warn("failed to publish order events", zap.Error(err))
	}
}
