// Package job schedules the background work the API needs done on a clock,
// using the buffalo worker.
package job

import (
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
)

const (
	handlerKey = "job_handler"
	argJobType = "job_type"
)

const (
	ExpirePolicies = "expire_policies"
)

var w *worker.Worker

var handlers = map[string]func(worker.Args) error{
	ExpirePolicies: expirePoliciesHandler,
}

func Init(appWorker *worker.Worker) {
	w = appWorker
	if err := (*w).Register(handlerKey, mainHandler); err != nil {
		log.Errorf("error registering '%s' handler, %s", handlerKey, err)
	}

	delay := time.Second * 10

	// Kick off the first expiry sweep between 1h11 and 3h27 from now, so
	// parallel instances don't all sweep at once
	if domain.Env.GoEnv != domain.EnvDevelopment {
		randMins := time.Duration(rand.Intn(387-71)+71) * time.Minute // #nosec G404
		delay = randMins
	}

	if err := SubmitDelayed(ExpirePolicies, delay, map[string]interface{}{}); err != nil {
		log.Error("error initializing ExpirePolicies job:", err)
		os.Exit(1)
	}
}

func mainHandler(args worker.Args) error {
	jobType := args[argJobType].(string)

	log.Infof("starting %s job", jobType)
	start := time.Now().UTC()

	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic in job handler %s: %s\n%s", jobType, err, debug.Stack())
		}
	}()

	if err := handlers[jobType](args); err != nil {
		log.Errorf("batch job %s failed: %s", jobType, err)
	}

	log.Infof("completed %s job in %s", jobType, time.Since(start))
	return nil
}

// Submit enqueues a new Worker job for the given job type. Arguments can be provided in `args`.
func Submit(jobType string, args map[string]interface{}) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).Perform(job)
}

// SubmitDelayed enqueues a delayed Worker job for the given job type. Arguments can be provided in `args`.
func SubmitDelayed(jobType string, delay time.Duration, args map[string]interface{}) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).PerformIn(job, delay)
}
