package cmd

import (
	"context"
	"log/slog"
	"time"

	adapterhttp "orderflow/internal/adapters/in/http"
	inkafka "orderflow/internal/adapters/in/kafka"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/customerrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/s3archive"
	"orderflow/internal/core/application/audit"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/metrics"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const defaultStalledOrderThreshold = 30 * time.Minute

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	collector  *metrics.Collector
	logger     *slog.Logger
	updater    *commands.OrderStateUpdater
	producer   *kafka.Producer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		collector:  metrics.NewCollector("orderflow", prometheus.DefaultRegisterer),
		logger:     logger,
	}

	producer, err := kafka.NewProducer([]string{configs.KafkaHost}, configs.KafkaOrderFinalizedTopic)
	if err != nil {
		return nil, err
	}
	root.producer = producer

	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return root.uowFactory.Create()
	})
	updater, err := commands.NewOrderStateUpdater(
		orderUoWFactory,
		services.NewWorkflowEngine(),
		producer,
		root.collector,
		logger,
	)
	if err != nil {
		return nil, err
	}
	root.updater = updater

	return root, nil
}

func (c *CompositionRoot) Collector() *metrics.Collector {
	return c.collector
}

func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() (commands.StartOrderCommandHandler, error) {
	return commands.NewStartOrderCommandHandler(c.updater)
}

func (c *CompositionRoot) CreateCompleteStepCommandHandler() (commands.CompleteStepCommandHandler, error) {
	return commands.NewCompleteStepCommandHandler(c.updater)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() (commands.CancelOrderCommandHandler, error) {
	return commands.NewCancelOrderCommandHandler(c.updater)
}

func (c *CompositionRoot) CreateSaveAddressCommandHandler() (commands.SaveAddressCommandHandler, error) {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveAddressCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() (queries.GetOrdersQueryHandler, error) {
	return queries.NewGetOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateGetProfileQueryHandler() (queries.GetProfileQueryHandler, error) {
	return queries.NewGetProfileQueryHandler(customerrepo.NewGormCustomerRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateHTTPServer() (*adapterhttp.Server, error) {
	startOrderHandler, err := c.CreateStartOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	completeStepHandler, err := c.CreateCompleteStepCommandHandler()
	if err != nil {
		return nil, err
	}
	cancelOrderHandler, err := c.CreateCancelOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	saveAddressHandler, err := c.CreateSaveAddressCommandHandler()
	if err != nil {
		return nil, err
	}
	getOrdersHandler, err := c.CreateGetOrdersQueryHandler()
	if err != nil {
		return nil, err
	}
	getProfileHandler, err := c.CreateGetProfileQueryHandler()
	if err != nil {
		return nil, err
	}

	return adapterhttp.NewServer(
		startOrderHandler,
		completeStepHandler,
		cancelOrderHandler,
		saveAddressHandler,
		getOrdersHandler,
		getProfileHandler,
	), nil
}

// CreateAuditNotifier wires the archival pipeline against the configured
// object storage bucket.
func (c *CompositionRoot) CreateAuditNotifier(ctx context.Context) (*audit.Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.configs.AWSRegion))
	if err != nil {
		return nil, err
	}

	store, err := s3archive.NewStore(s3.NewFromConfig(awsCfg), c.configs.AuditBucket)
	if err != nil {
		return nil, err
	}

	return audit.NewNotifier(store, c.collector, c.logger)
}

// CreateFinalizedOrderConsumer builds the consumer group that feeds
// finalized orders into the audit notifier.
func (c *CompositionRoot) CreateFinalizedOrderConsumer(notifier *audit.Notifier) (*inkafka.FinalizedOrderConsumer, error) {
	return inkafka.NewFinalizedOrderConsumer(
		[]string{c.configs.KafkaHost},
		c.configs.KafkaConsumerGroup,
		c.configs.KafkaOrderFinalizedTopic,
		notifier,
		c.logger,
	)
}

// CreateGetStalledOrdersQueryHandler builds the scan used by the watchdog job.
func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() (queries.GetStalledOrdersQueryHandler, error) {
	return queries.NewGetStalledOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil))
}

// CreateJobManager builds the background jobs. The stall threshold comes
// from configuration and falls back to 30 minutes when absent or invalid.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	threshold, err := time.ParseDuration(c.configs.StalledOrderThreshold)
	if err != nil || threshold <= 0 {
		threshold = defaultStalledOrderThreshold
	}

	stalledOrdersHandler, err := c.CreateGetStalledOrdersQueryHandler()
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(stalledOrdersHandler, threshold, c.logger), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}
