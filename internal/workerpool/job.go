package workerpool

// Job is a single one-shot unit of work. It runs exactly once, on exactly
// one worker, and reports nothing back to the submitter.
type Job func()

// message is what travels through the pool queue: either a job to run or
// the terminate sentinel that stops one worker.
type message struct {
	job       Job
	terminate bool
}
