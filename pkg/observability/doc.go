/*
Package observability provides lifecycle hooks for monitoring the stepwise
engine and players.

Metrics records Prometheus counters and histograms on its own registry;
LoggingHooks writes every event to a structured logger. Both return
domain.LifecycleHooks, which compose with LifecycleHooks.Merge.
*/
package observability
