package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/rs/zerolog/log"
)

// TaskFunc represents a scheduled task function
type TaskFunc func(ctx context.Context) error

// Task represents a scheduled task
type Task struct {
	Name     string
	Interval time.Duration
	Func     TaskFunc
	LastRun  time.Time
	NextRun  time.Time
	Running  bool
}

// Scheduler runs named tasks at fixed intervals. A task never overlaps
// with itself.
type Scheduler struct {
	tasks   map[string]*Task
	mutex   sync.RWMutex
	tick    time.Duration
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler that checks for due tasks every tick
func NewScheduler(tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = time.Second
	}
	return &Scheduler{
		tasks:   make(map[string]*Task),
		tick:    tick,
		timeout: 5 * time.Minute,
	}
}

// AddTask adds a new scheduled task. Its first run is one interval from now.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn TaskFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks[name] = &Task{
		Name:     name,
		Interval: interval,
		Func:     fn,
		NextRun:  time.Now().Add(interval),
	}
}

// RunNow runs a task immediately on the caller's goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mutex.Lock()
	task, ok := s.tasks[name]
	if !ok {
		s.mutex.Unlock()
		return fmt.Errorf("unknown task %q", name)
	}
	if task.Running {
		s.mutex.Unlock()
		return fmt.Errorf("task %q already running", name)
	}
	task.Running = true
	s.mutex.Unlock()

	return s.runTask(ctx, task)
}

// Start checks for due tasks until ctx is done, then waits for running
// tasks to return
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().Dur("tick", s.tick).Msg("Scheduler started")

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			log.Info().Msg("Scheduler stopped")
			return
		case now := <-ticker.C:
			s.checkTasks(ctx, now)
		}
	}
}

func (s *Scheduler) checkTasks(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	due := make([]*Task, 0)
	for _, task := range s.tasks {
		if !task.Running && !now.Before(task.NextRun) {
			task.Running = true
			due = append(due, task)
		}
	}
	s.mutex.Unlock()

	for _, task := range due {
		s.wg.Add(1)
		go func(t *Task) {
			defer s.wg.Done()
			_ = s.runTask(ctx, t)
		}(task)
	}
}

// runTask expects task.Running to be set already
func (s *Scheduler) runTask(ctx context.Context, task *Task) error {
	defer func() {
		s.mutex.Lock()
		task.Running = false
		task.LastRun = time.Now()
		task.NextRun = task.LastRun.Add(task.Interval)
		s.mutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := task.Func(ctx); err != nil {
		log.Error().Err(err).Str("task", task.Name).Msg("Task failed")
		return err
	}

	log.Debug().Str("task", task.Name).Dur("took", time.Since(start)).Msg("Task completed")
	return nil
}

// GetTasks returns information about all tasks, sorted by name
func (s *Scheduler) GetTasks() []TaskInfo {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tasks := make([]TaskInfo, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, TaskInfo{
			Name:     task.Name,
			Interval: task.Interval,
			LastRun:  task.LastRun,
			NextRun:  task.NextRun,
			Running:  task.Running,
		})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks
}

// TaskInfo holds information about a task
type TaskInfo struct {
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
	LastRun  time.Time     `json:"lastRun"`
	NextRun  time.Time     `json:"nextRun"`
	Running  bool          `json:"running"`
}

// SessionEvictionTask is the name the eviction task is registered under
const SessionEvictionTask = "session-eviction"

// EvictIdleSessionsTask drops sessions idle for longer than maxIdle
func EvictIdleSessionsTask(registry *catalog.Registry, maxIdle time.Duration) TaskFunc {
	return func(ctx context.Context) error {
		evicted := registry.EvictIdle(maxIdle, time.Now())
		if len(evicted) > 0 {
			log.Info().Int("evicted", len(evicted)).Int("remaining", registry.Len()).Msg("Evicted idle sessions")
		}
		return nil
	}
}
