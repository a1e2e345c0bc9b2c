package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	invdto "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/notifier"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product"
	"go.uber.org/zap"
)

type Config struct {
	ReservationTTL  time.Duration
	OrderPrefix     string
	FreeShippingMin float64
	ShippingFee     float64
}

type orderUseCase struct {
	repo     order.Repository
	inv      inventory.UseCase
	products product.Repository
	notify   order.StatusNotifier
	cfg      Config
	logger   *zap.Logger
}

func NewOrderUseCase(
	repo order.Repository,
	inv inventory.UseCase,
	products product.Repository,
	notify order.StatusNotifier,
	cfg Config,
	log *zap.Logger,
) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		inv:      inv,
		products: products,
		notify:   notify,
		cfg:      cfg,
		logger:   log,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Order, error) {
	if input.CustomerName == "" || input.CustomerPhone == "" {
		return nil, order.ErrMissingCustomer
	}
	if len(input.Items) == 0 {
		return nil, order.ErrNoItems
	}

	now := time.Now()
	orderID := uuid.New().String()

	items := make([]model.OrderItem, len(input.Items))
	reserveItems := make([]invdto.ReserveItem, len(input.Items))
	var subtotal float64
	for i, in := range input.Items {
		if in.Qty <= 0 {
			return nil, order.ErrInvalidQuantity
		}
		detail, err := uc.products.GetVariantDetail(ctx, in.ProductVariantID)
		if err != nil {
			return nil, err
		}
		lineTotal := detail.UnitPrice * float64(in.Qty)
		items[i] = model.OrderItem{
			ID:               uuid.New().String(),
			OrderID:          orderID,
			ProductVariantID: in.ProductVariantID,
			ProductName:      detail.ProductName,
			Size:             detail.Size,
			Color:            detail.Color,
			Qty:              in.Qty,
			UnitPrice:        detail.UnitPrice,
			LineTotal:        lineTotal,
		}
		reserveItems[i] = invdto.ReserveItem{VariantID: in.ProductVariantID, Qty: in.Qty}
		subtotal += lineTotal
	}

	shipping := uc.cfg.ShippingFee
	if subtotal >= uc.cfg.FreeShippingMin {
		shipping = 0
	}

	var email *string
	if input.CustomerEmail != "" {
		email = &input.CustomerEmail
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	reservedUntil := now.Add(uc.cfg.ReservationTTL)
	ord := &model.Order{
		BaseModel:       model.BaseModel{ID: orderID, CreatedAt: now, UpdatedAt: now},
		OrderNumber:     generateOrderNumber(uc.cfg.OrderPrefix),
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   email,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal + shipping,
		PaymentMethod:   paymentMethod,
		Status:          model.OrderStatusPending,
		ReservedUntil:   &reservedUntil,
		Items:           items,
	}
	msg := notifier.BuildOrderMessage(ord)
	ord.WhatsAppMessage = &msg

	if err := uc.repo.CreateWithItems(ctx, ord); err != nil {
		return nil, err
	}

	if err := uc.inv.CreateReservations(ctx, orderID, reserveItems, uc.cfg.ReservationTTL); err != nil {
		// No holds were kept; remove the order so nothing partial survives.
		if derr := uc.repo.Delete(ctx, orderID); derr != nil {
			uc.logger.Error("failed to remove order after reservation failure",
				zap.String("order_id", orderID), zap.Error(derr))
		}
		return nil, err
	}

	uc.logger.Info("checkout completed",
		zap.String("order_id", orderID),
		zap.String("order_number", ord.OrderNumber),
		zap.Int("items", len(items)),
		zap.Float64("total", ord.Total))
	return ord, nil
}

func (uc *orderUseCase) SetStatus(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	ord, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ord.Status.CanTransitionTo(target) {
		return nil, &order.InvalidTransitionError{Current: ord.Status, Target: target}
	}

	// The UPDATE re-checks the observed status; a concurrent transition on
	// the same order makes this affect zero rows instead of overwriting it.
	ok, err := uc.repo.UpdateStatus(ctx, orderID, ord.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := uc.repo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, &order.InvalidTransitionError{Current: current.Status, Target: target}
	}

	oldStatus := ord.Status
	ord.Status = target
	ord.ReservedUntil = nil

	if err := uc.applyTransitionEffect(ctx, ord, oldStatus, target); err != nil {
		// Status is committed; remaining holds are healed by the next sweep.
		uc.logger.Error("inventory effect failed after status change",
			zap.String("order_id", orderID),
			zap.String("old_status", oldStatus.String()),
			zap.String("new_status", target.String()),
			zap.Error(err))
		return nil, fmt.Errorf("order %s moved to %s but inventory update failed: %w", ord.OrderNumber, target, err)
	}

	uc.sendNotification(ctx, ord, oldStatus, target)
	return ord, nil
}

func (uc *orderUseCase) applyTransitionEffect(ctx context.Context, ord *model.Order, from, to model.OrderStatus) error {
	switch {
	case to == model.OrderStatusConfirmed:
		// Stock stays spent; only the holds are retired.
		_, err := uc.inv.Confirm(ctx, ord.ID)
		return err
	case to == model.OrderStatusCancelled && from == model.OrderStatusPending:
		_, err := uc.inv.Cancel(ctx, ord.ID)
		return err
	}
	// Cancellation after CONFIRMED has no reservations left; later
	// transitions never touch the ledger.
	return nil
}

func (uc *orderUseCase) sendNotification(ctx context.Context, ord *model.Order, from, to model.OrderStatus) {
	if uc.notify == nil {
		return
	}
	if err := uc.notify.NotifyStatusChange(ctx, ord, from, to); err != nil {
		uc.logger.Warn("status notification failed",
			zap.String("order_id", ord.ID),
			zap.String("new_status", to.String()),
			zap.Error(err))
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return uc.repo.GetByID(ctx, orderID)
}

func (uc *orderUseCase) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return uc.repo.GetByNumber(ctx, orderNumber)
}

func (uc *orderUseCase) ListOrdersByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	return uc.repo.ListByPhone(ctx, phone)
}

func (uc *orderUseCase) ListOrders(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.List(ctx, f)
}

func (uc *orderUseCase) SweepExpired(ctx context.Context, now time.Time) (*dto.SweepResult, error) {
	expired, err := uc.inv.ExpiredReservations(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &dto.SweepResult{}
	grouped := make(map[string][]model.Reservation)
	for _, res := range expired {
		grouped[res.OrderID] = append(grouped[res.OrderID], res)
	}

	for orderID, rows := range grouped {
		if err := uc.sweepOrder(ctx, orderID, rows, result); err != nil {
			// Work committed for earlier orders stands; this order's rows are
			// still expired and the next tick re-selects them.
			uc.logger.Error("sweep failed for order, continuing",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}

	// A checkout that crashed before writing any reservation row leaves the
	// order PENDING with a stale reserved_until and nothing for the pass
	// above to find. Cancel those orders directly. Orders the pass above
	// already cancelled have left PENDING and are not re-selected.
	stale, err := uc.repo.ListExpiredPending(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range stale {
		if _, err := uc.cancelExpiredOrder(ctx, &stale[i], result); err != nil {
			uc.logger.Error("sweep failed for order, continuing",
				zap.String("order_id", stale[i].ID), zap.Error(err))
		}
	}

	if result.Released > 0 || result.OrdersCancelled > 0 {
		uc.logger.Info("reservation sweep complete",
			zap.Int("reservations_released", result.Released),
			zap.Int("orders_cancelled", result.OrdersCancelled))
	}
	return result, nil
}

func (uc *orderUseCase) sweepOrder(ctx context.Context, orderID string, rows []model.Reservation, result *dto.SweepResult) error {
	ord, err := uc.repo.GetByID(ctx, orderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		// Orphaned holds still carve out stock; give it back.
		return uc.retireRows(ctx, rows, true, result)
	}
	if err != nil {
		return err
	}

	if ord.Status == model.OrderStatusPending {
		ok, err := uc.cancelExpiredOrder(ctx, ord, result)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		// Lost the race with an explicit confirm/cancel; re-read and fall
		// through to the defensive path.
		ord, err = uc.repo.GetByID(ctx, orderID)
		if errors.Is(err, order.ErrOrderNotFound) {
			return uc.retireRows(ctx, rows, true, result)
		}
		if err != nil {
			return err
		}
	}

	// The order already left PENDING. Confirm should have retired its rows;
	// any leftovers are deleted without a second release. A CANCELLED order
	// with leftovers means a cancel crashed mid-effect, so those rows do get
	// released.
	release := ord.Status == model.OrderStatusCancelled
	return uc.retireRows(ctx, rows, release, result)
}

// cancelExpiredOrder drives one PENDING order to CANCELLED and releases any
// holds it still has. ok=false means another writer moved the order first.
func (uc *orderUseCase) cancelExpiredOrder(ctx context.Context, ord *model.Order, result *dto.SweepResult) (bool, error) {
	ok, err := uc.repo.UpdateStatus(ctx, ord.ID, model.OrderStatusPending, model.OrderStatusCancelled)
	if err != nil || !ok {
		return ok, err
	}

	released, err := uc.inv.Cancel(ctx, ord.ID)
	result.Released += released
	if err != nil {
		return true, err
	}
	result.OrdersCancelled++
	uc.logger.Info("cancelled expired order",
		zap.String("order_id", ord.ID),
		zap.String("order_number", ord.OrderNumber))

	cancelled := *ord
	cancelled.Status = model.OrderStatusCancelled
	cancelled.ReservedUntil = nil
	uc.sendNotification(ctx, &cancelled, model.OrderStatusPending, model.OrderStatusCancelled)
	return true, nil
}

func (uc *orderUseCase) retireRows(ctx context.Context, rows []model.Reservation, release bool, result *dto.SweepResult) error {
	for _, res := range rows {
		retired, err := uc.inv.RetireReservation(ctx, res.ID, release)
		if err != nil {
			return err
		}
		if retired && release {
			result.Released++
		}
	}
	return nil
}

func generateOrderNumber(prefix string) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("%s-%s%s", prefix, ts, suffix)
}
