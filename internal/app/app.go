package app

import (
	"os"

	"swiftpay/internal/attendance"
	"swiftpay/internal/middleware"
	"swiftpay/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and wires every module onto the
// router. The kafka writer for clock events is optional; without a broker
// the clock publisher degrades to a noop and only the outbox path carries
// events.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	clockPublisher := attendance.NewNoopEventPublisher()
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer, err := connection.ConnectKafkaWithRetry(broker, 5)
		if err != nil {
			return err
		}
		clockPublisher = attendance.NewKafkaEventPublisher(writer)
		zap.L().Info("kafka connection established", zap.String("broker", broker))
	}

	router.Use(middleware.RequestID())

	registerModules(router, db, gormDB, rdb, clockPublisher)

	return nil
}
