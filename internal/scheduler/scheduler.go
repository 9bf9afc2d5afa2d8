package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Job es una tarea programada
type Job interface {
	Run() error
	Name() string
}

// Scheduler gestiona los jobs en segundo plano
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler iniciado")
}

// Stop detiene el scheduler esperando a que terminen los jobs en curso
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler detenido")
}

// AddJob registra un job con una expresión cron estándar
// (ej. "*/15 * * * *" cada 15 minutos, "@hourly" cada hora)
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			log.Printf("Job %s falló: %v", job.Name(), err)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("Job %s registrado con schedule %q", job.Name(), schedule)
	return nil
}
