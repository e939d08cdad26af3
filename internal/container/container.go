package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/codecourse-api/internal/aiquiz"
	"github.com/saulo-duarte/codecourse-api/internal/auth"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/course"
	"github.com/saulo-duarte/codecourse-api/internal/events"
	"github.com/saulo-duarte/codecourse-api/internal/order"
	"github.com/saulo-duarte/codecourse-api/internal/router"
	"github.com/saulo-duarte/codecourse-api/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Settings        *config.Settings
	DB              *gorm.DB
	Publisher       events.Publisher
	UserContainer   *user.UserContainer
	CourseContainer *course.CourseContainer
	OrderContainer  *order.OrderContainer
	AIQuizContainer *aiquiz.AIQuizContainer
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&course.Category{},
		&course.Course{},
		&order.Order{},
		&order.OrderDetail{},
	}
}

// New connects the database and broker and wires every feature. Background workers
// stop when ctx is cancelled.
func New(ctx context.Context, cfg *config.Settings) (*Container, error) {
	config.Init(cfg.LogLevel)
	auth.Init(cfg.JWTSecret)
	config.InitCrypto(cfg.CryptoKey)

	if err := config.Connect(ctx, cfg.DatabaseDSN); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return build(ctx, cfg, config.DB)
}

func build(ctx context.Context, cfg *config.Settings, db *gorm.DB) (*Container, error) {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	publisher, err := events.NewPublisher(ctx, cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, cfg)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	return &Container{
		Settings:        cfg,
		DB:              db,
		Publisher:       publisher,
		UserContainer:   user.NewUserContainer(db, cfg.JWTTTL),
		CourseContainer: course.NewCourseContainer(db),
		OrderContainer:  order.NewOrderContainer(db, publisher),
		AIQuizContainer: aiQuizContainer,
	}, nil
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:   c.UserContainer.Handler,
		CourseHandler: c.CourseContainer.Handler,
		OrderHandler:  c.OrderContainer.Handler,
		AIQuizHandler: c.AIQuizContainer.Handler,
		UserChecker:   c.UserContainer.Service,
		CorsOrigins:   c.Settings.CorsOrigins,
		Ready:         c.ping,
	})
}

func (c *Container) ping() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (c *Container) Close() error {
	if err := c.Publisher.Close(); err != nil {
		return err
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
