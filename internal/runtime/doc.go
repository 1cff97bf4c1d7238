// Package runtime runs the external commands a scaffold depends on. The
// Runner interface is the seam between the scaffold pipeline and real child
// processes: ExecRunner spawns them, tests substitute a RunnerFunc. It also
// probes the installed Node.js version that generated projects require.
package runtime
