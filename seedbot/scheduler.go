package seedbot

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		Scheduler: scheduler,
	}, nil
}

func (s *Scheduler) AddDurationJob(interval time.Duration, jobFunc interface{}) error {
	_, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(jobFunc),
	)
	return err
}
