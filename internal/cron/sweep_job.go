package cron

import (
	"context"
	"fmt"

	"github.com/juancamilo2341431/netrix-backend/internal/sweep"
)

// SweepJob drives the payment reconciliation sweep on the cron cadence.
type SweepJob struct {
	service *sweep.Service
}

// NewSweepJob builds the sweep cron job.
func NewSweepJob(service *sweep.Service) (*SweepJob, error) {
	if service == nil {
		return nil, fmt.Errorf("sweep service required")
	}
	return &SweepJob{service: service}, nil
}

// Name identifies the job in logs and metrics.
func (j *SweepJob) Name() string {
	return "payment-sweep"
}

// Run executes one sweep batch.
func (j *SweepJob) Run(ctx context.Context) error {
	_, err := j.service.Run(ctx)
	return err
}
