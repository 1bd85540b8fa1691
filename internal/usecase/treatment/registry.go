package treatment

import "sync"

// Registry holds live workflow sessions in memory. One session per
// appointment: starting a new workflow for the same appointment
// replaces the previous one, which had no persisted side effects.
type Registry struct {
	mu            sync.Mutex
	sessions      map[string]*Workflow
	byAppointment map[uint]string
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:      make(map[string]*Workflow),
		byAppointment: make(map[uint]string),
	}
}

func (r *Registry) Put(wf *Workflow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byAppointment[wf.AppointmentID()]; ok {
		delete(r.sessions, prev)
	}

	r.sessions[wf.ID()] = wf
	r.byAppointment[wf.AppointmentID()] = wf.ID()
}

func (r *Registry) Get(id string) (*Workflow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wf, ok := r.sessions[id]
	return wf, ok
}

// Remove discards a session, either after a successful commit or when
// the operator abandons the workflow.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wf, ok := r.sessions[id]; ok {
		delete(r.byAppointment, wf.AppointmentID())
		delete(r.sessions, id)
	}
}
