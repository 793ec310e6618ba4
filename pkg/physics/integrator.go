package physics

// Step advances every body one displayed frame. For each body the full
// ordered inner loop folds pairwise accelerations into its velocity and
// applies collision damping, then its position integrates from the updated
// velocity before the next body's pass begins. Both directions of every
// pair are computed independently; the loop must not be halved, since the
// per-direction damping application is part of the observable behavior.
func Step(bodies []*Body, speed float64, paused bool) {
	for _, b := range bodies {
		for _, other := range bodies {
			if other == b || b.Initializing || other.Initializing {
				continue
			}
			acc, ok := Acceleration(b, other)
			if !ok {
				continue
			}
			if !paused {
				b.Accelerate(acc, speed)
			}
			// damping is not gated on pause
			b.Vel = b.Vel.Mul(CheckCollision(b, other))
		}
		if b.Initializing {
			b.UpdateRadius()
			b.RebuildMesh()
		}
		if !paused {
			b.UpdatePos(speed)
		}
	}
}
