/*
Package workers determines worker counts for containerized environments.

When running in containers, the number of usable CPUs may be limited by
cgroup constraints. Go 1.19+ sets GOMAXPROCS from the container CPU limit,
while runtime.NumCPU() still reports the host machine's CPU count, so this
package sizes everything from GOMAXPROCS.

The transcoding admission gate is the main consumer: with
MAX_CONCURRENT_TRANSCODES=auto the gate takes one slot per available CPU,
since an encoding run saturates roughly one core.

	// One slot per CPU, capped at 8
	slots := workers.ForCPU(8)

	// Custom multiplier, no cap
	slots := workers.Count(2.0, 0)

Operators can override the calculation with the TRANSCODE_WORKERS
environment variable:

	env:
	- name: TRANSCODE_WORKERS
	  value: "4"

All functions are safe for concurrent use.
*/
package workers
