package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "ordertracking/internal/adapters/in/http"
	"ordertracking/internal/adapters/in/ws"
	"ordertracking/internal/adapters/out/kafka"
	"ordertracking/internal/adapters/out/notifier"
	"ordertracking/internal/adapters/out/postgres"
	"ordertracking/internal/core/application/fanout"
	"ordertracking/internal/core/application/notifications"
	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/application/usecases/queries"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/core/ports"
	"ordertracking/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide collaborators. The per-order lock
// table is shared by the transition engine and the websocket handler.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory

	registry    *fanout.Registry
	broadcaster *fanout.Broadcaster
	dispatcher  *notifications.Dispatcher
	engine      *commands.StatusTransitionEngine
	locks       *commands.OrderLocks

	producer *kafka.OrderEventProducer
	closers  []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   fanout.NewRegistry(),
		locks:      commands.NewOrderLocks(),
	}

	transport, err := c.createNotifier()
	if err != nil {
		return nil, err
	}

	c.broadcaster = fanout.NewBroadcaster(c.registry, logger)
	c.dispatcher = notifications.NewDispatcher(
		transport,
		services.NewStatusMessageComposer(),
		cfg.NotificationConfig(),
		logger,
	)

	// a nil *OrderEventProducer inside the interface would not compare equal to nil
	var publisher ports.OrderEventPublisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		c.producer = kafka.NewOrderEventProducer(brokers, cfg.KafkaStatusChangedTopic, logger)
		c.closers = append(c.closers, c.producer.Close)
		publisher = c.producer
	}

	c.engine = commands.NewStatusTransitionEngine(
		c.orderUoWFactory(),
		c.locks,
		c.broadcaster,
		c.dispatcher,
		publisher,
		logger,
	)

	return c, nil
}

func (c *CompositionRoot) createNotifier() (ports.Notifier, error) {
	switch c.cfg.Notifier {
	case NotifierEmail:
		return notifier.NewEmailNotifier(c.cfg.EmailServiceURL, nil), nil
	case NotifierRabbitMQ:
		n, err := notifier.DialRabbitMQNotifier(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange, c.cfg.RabbitMQRoutingKey)
		if err != nil {
			return nil, fmt.Errorf("connect notification broker: %w", err)
		}
		c.closers = append(c.closers, n.Close)
		return n, nil
	default:
		return notifier.NewLogNotifier(c.logger), nil
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) Registry() *fanout.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher, c.surcharges(), c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateVerifyDeliveryCodeCommandHandler() commands.VerifyDeliveryCodeCommandHandler {
	return commands.NewVerifyDeliveryCodeCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateVerifyDeliveryCodeCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateWebsocketHandler() *ws.Handler {
	return ws.NewHandler(c.registry, c.CreateGetOrderQueryHandler(), c.locks, c.cfg.WebsocketConfig(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, c.cfg.SweepSchedule, c.logger)
}

// Close drains scheduled notifications, then closes the outbound transports.
func (c *CompositionRoot) Close(ctx context.Context) error {
	err := c.dispatcher.Shutdown(ctx)
	if err != nil {
		err = fmt.Errorf("drain notifications: %w", err)
	}

	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn())
	}
	return err
}

func (c *CompositionRoot) surcharges() commands.Surcharges {
	return commands.Surcharges{
		order.Normal:    c.cfg.NormalSurchargeCents,
		order.Express:   c.cfg.ExpressSurchargeCents,
		order.Scheduled: c.cfg.ScheduledSurchargeCents,
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
