package queue

// Queue is the ordered job list with a forward-only cursor.
type Queue struct {
	jobs      []Job
	states    []Status
	current   int
	completed []string
}

// New constructs a queue holding jobs in order.
func New(jobs ...Job) *Queue {
	q := &Queue{}
	for _, job := range jobs {
		q.Append(job)
	}
	return q
}

// Append enqueues job at the tail.
func (q *Queue) Append(job Job) {
	q.jobs = append(q.jobs, job)
	q.states = append(q.states, StatusPending)
}

// Len returns the number of jobs.
func (q *Queue) Len() int { return len(q.jobs) }

// Jobs returns a copy of the job list.
func (q *Queue) Jobs() []Job {
	return append([]Job(nil), q.jobs...)
}

// Job returns the job at index.
func (q *Queue) Job(index int) (Job, bool) {
	if index < 0 || index >= len(q.jobs) {
		return Job{}, false
	}
	return q.jobs[index], true
}

// Current returns the cursor. It equals Len once every job has completed.
func (q *Queue) Current() int { return q.current }

// CurrentJob returns the job under the cursor.
func (q *Queue) CurrentJob() (Job, bool) {
	return q.Job(q.current)
}

// Exhausted reports whether the cursor has moved past the last job.
func (q *Queue) Exhausted() bool { return q.current >= len(q.jobs) }

// Running reports whether the job under the cursor is in flight.
func (q *Queue) Running() bool {
	return !q.Exhausted() && q.states[q.current] == StatusRunning
}

// State returns the status of the job at index.
func (q *Queue) State(index int) Status {
	if index < 0 || index >= len(q.states) {
		return ""
	}
	return q.states[index]
}

// Completed returns the inputs encoded successfully, in completion order.
func (q *Queue) Completed() []string {
	return append([]string(nil), q.completed...)
}

func (q *Queue) setOutput(index int, output string) {
	q.jobs[index].Output = output
}

func (q *Queue) markRunning() {
	q.states[q.current] = StatusRunning
}

func (q *Queue) markFailed() {
	q.states[q.current] = StatusFailed
}

// complete records the current job as done and advances the cursor by one.
func (q *Queue) complete() {
	q.states[q.current] = StatusCompleted
	q.completed = append(q.completed, q.jobs[q.current].Input)
	q.current++
}
