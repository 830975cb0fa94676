package streams

import "github.com/agent-sim/agent-sim/sim/trace"

// DrawObserver receives one record per successful draw. Registries forward their
// observer to every stream they create.
type DrawObserver interface {
	RecordDraw(rec trace.DrawRecord)
}

func recordDraw(o DrawObserver, stream string, ti int, d Sampler, req DrawRequest) {
	if o == nil {
		return
	}
	o.RecordDraw(trace.DrawRecord{
		Stream:       stream,
		Timestep:     ti,
		Distribution: d.Name(),
		Basis:        req.Basis.String(),
		Requested:    req.Requested(),
		Drawn:        req.Size,
	})
}
