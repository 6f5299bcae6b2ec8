package ordersmonitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
	"go-tegro/pkg/logging"
	"go-tegro/pkg/threadsafe"
	"go.uber.org/zap"
)

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

type OrdersRepository interface {
	GetOrders(ctx context.Context, shopID string, limit int, statuses ...data.Status) ([]data.Order, error)
	ApplyOrderCheck(ctx context.Context, orderID int64, expected data.Status, check data.OrderCheck) (bool, error)
}

type PaymentAPI interface {
	CheckOrder(ctx context.Context, params apiclient.Params) (tegroprotocol.Response, error)
}

type Config struct {
	ShopID            string
	TickPeriod        time.Duration
	WorkersCount      int
	TasksBufferLength int
}

type task struct {
	orderID  int64
	remoteID int64
	// status is the local status the order had when it was scheduled.
	status data.Status
}

// OrdersMonitor polls the payment service for orders that are still pending
// locally, in case a status notification was lost.
type OrdersMonitor struct {
	ordersRepository   OrdersRepository
	transactionManager TransactionManager
	paymentAPI         PaymentAPI
	processingOrders   *threadsafe.HashSet[int64]
	config             Config
	logger             *logging.ZapLogger
	done               chan struct{}
	stopOnce           sync.Once
}

func NewOrdersMonitor(
	config Config,
	ordersRepository OrdersRepository,
	transactionManager TransactionManager,
	paymentAPI PaymentAPI,
	logger *logging.ZapLogger,
) *OrdersMonitor {
	if config.WorkersCount <= 0 {
		config.WorkersCount = 1
	}
	if config.TasksBufferLength <= 0 {
		config.TasksBufferLength = config.WorkersCount
	}
	return &OrdersMonitor{
		ordersRepository:   ordersRepository,
		transactionManager: transactionManager,
		paymentAPI:         paymentAPI,
		config:             config,
		processingOrders:   threadsafe.NewHashSet[int64](),
		logger:             logger,
		done:               make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is done, and then waits for the
// orders already handed to workers.
func (om *OrdersMonitor) Run(ctx context.Context) {
	tasks := make(chan task, om.config.TasksBufferLength)

	wg := &sync.WaitGroup{}

	for i := 0; i < om.config.WorkersCount; i++ {
		wg.Add(1)
		go func(tasks <-chan task) {
			defer wg.Done()
			om.worker(ctx, tasks)
		}(tasks)
	}

	wg.Add(1)
	go func(tasks chan<- task) {
		defer wg.Done()
		om.scheduler(ctx, tasks)
	}(tasks)

	wg.Wait()
}

func (om *OrdersMonitor) Stop() {
	om.stopOnce.Do(func() {
		close(om.done)
	})
}

func (om *OrdersMonitor) scheduler(ctx context.Context, tasks chan<- task) {
	defer close(tasks)

	ticker := time.NewTicker(om.config.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-om.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := om.tick(ctx, tasks); err != nil {
				om.logger.ErrorCtx(ctx, "error while scheduling orders", zap.Error(err))
			}
		}
	}
}

func (om *OrdersMonitor) tick(ctx context.Context, tasks chan<- task) error {
	maxTasksToSchedule := om.config.TasksBufferLength - len(tasks)
	if maxTasksToSchedule <= 0 {
		return nil
	}
	orders, err := om.ordersRepository.GetOrders(ctx, om.config.ShopID, maxTasksToSchedule, data.PendingStatus)
	if err != nil {
		return fmt.Errorf("failed to get pending orders: %w", err)
	}
	for _, order := range orders {
		if order.RemoteID == nil {
			continue
		}
		if !om.processingOrders.Add(order.ID) {
			continue
		}
		om.logger.DebugCtx(ctx, "scheduling order", zap.Int64("localOrderID", order.ID))
		select {
		case tasks <- task{orderID: order.ID, remoteID: *order.RemoteID, status: order.Status}:
		default:
			om.processingOrders.Remove(order.ID)
			return nil
		}
	}
	return nil
}

func (om *OrdersMonitor) worker(ctx context.Context, tasks <-chan task) {
	for t := range tasks {
		taskCtx := logging.WithContextFields(
			ctx,
			zap.Int64("localOrderID", t.orderID),
			zap.Int64("remoteOrderID", t.remoteID),
		)
		err := om.handleOrder(taskCtx, t)
		om.processingOrders.Remove(t.orderID)
		if err != nil {
			om.logger.ErrorCtx(taskCtx, "failed to check order", zap.Error(err))
		}
	}
}

func (om *OrdersMonitor) handleOrder(ctx context.Context, t task) error {
	if ctx.Err() != nil {
		return nil
	}
	resp, err := om.paymentAPI.CheckOrder(ctx, apiclient.Params{"order_id": t.remoteID})
	if err != nil {
		return fmt.Errorf("failed to get remote order: %w", err)
	}
	var info tegroprotocol.OrderInfo
	if err := resp.DecodeData(&info); err != nil {
		return fmt.Errorf("failed to read remote order: %w", err)
	}
	check := data.OrderCheck{
		Status:     data.Status(info.Status),
		CurrencyID: info.CurrencyID,
		Fee:        info.Fee,
	}
	paidAt, ok, err := info.PayedAt()
	if err != nil {
		return fmt.Errorf("failed to parse payment time: %w", err)
	}
	if ok {
		check.PaidAt = &paidAt
	}
	return om.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		applied, err := om.ordersRepository.ApplyOrderCheck(ctx, t.orderID, t.status, check)
		if err != nil {
			return fmt.Errorf("failed to store order check: %w", err)
		}
		if !applied {
			om.logger.DebugCtx(ctx, "order status changed during check, result dropped")
		}
		return nil
	})
}
