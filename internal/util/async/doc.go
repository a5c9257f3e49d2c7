// Package async provides bounded parallel task execution with fail-fast
// cancellation.
//
// [RunLimited] runs tasks with a concurrency limit; a limit of one runs them
// strictly in order. It is used by the orchestrator to optionally generate
// several node configs at once.
package async
