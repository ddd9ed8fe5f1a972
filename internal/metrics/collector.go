package metrics

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
)

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business gauges from the database
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	if c.db == nil {
		return
	}

	var boards, defs, tasks int64
	if err := c.db.Model(&domain.Board{}).Count(&boards).Error; err != nil {
		c.logger.Warn("Failed to count boards for metrics", zap.Error(err))
	} else {
		c.metrics.SetBoardsTotal(boards)
	}
	if err := c.db.Model(&domain.FieldDefinition{}).Count(&defs).Error; err != nil {
		c.logger.Warn("Failed to count field definitions for metrics", zap.Error(err))
	} else {
		c.metrics.SetFieldDefinitionsTotal(defs)
	}
	if err := c.db.Model(&domain.Task{}).Count(&tasks).Error; err != nil {
		c.logger.Warn("Failed to count tasks for metrics", zap.Error(err))
	} else {
		c.metrics.SetTasksTotal(tasks)
	}

	// Connection pool stats piggyback on the same tick
	if sqlDB, err := c.db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}
}
