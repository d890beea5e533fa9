package metrics

import "sync"

// Sample é uma medição registrada pelo Recorder.
type Sample struct {
	Type  string
	Name  string
	Value float64
	Tags  []string
}

// Recorder guarda as medições em memória. Usado em testes e no modo debug.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *Recorder) Count(name string, value float64, tags []string) error {
	return r.add("count", name, value, tags)
}

func (r *Recorder) Gauge(name string, value float64, tags []string) error {
	return r.add("gauge", name, value, tags)
}

func (r *Recorder) Histogram(name string, value float64, tags []string) error {
	return r.add("histogram", name, value, tags)
}

func (r *Recorder) add(typ, name string, value float64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{Type: typ, Name: name, Value: value, Tags: append([]string(nil), tags...)})
	return nil
}

// Samples retorna uma cópia das medições.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// Named filtra as medições pelo nome.
func (r *Recorder) Named(name string) []Sample {
	var out []Sample
	for _, s := range r.Samples() {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}
