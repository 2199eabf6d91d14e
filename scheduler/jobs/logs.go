package jobs

import (
	"fmt"
	"goatedvips/pkg/config"
	"goatedvips/pkg/logger"
	"log"
	"time"
)

// UploadLogs ships the accumulated log file to the bucket and truncates it.
func UploadLogs(cfg *config.Config) error {
	if cfg.Bucket.LogBucket == "" {
		return nil
	}

	jobLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		return fmt.Errorf("couldn't create the logger: %w", err)
	}

	objectKey := fmt.Sprintf("sync/%s.log", time.Now().UTC().Format("2006-01-02"))
	if err := jobLogger.UploadToS3Bucket(objectKey); err != nil {
		return fmt.Errorf("couldn't upload the logs: %w", err)
	}

	log.Printf("Uploaded logs to %s", objectKey)
	return nil
}
