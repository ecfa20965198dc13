/*
Package stepwise records textbook algorithms as replayable lists of steps and
plays them back on a timer.

# Concept

A run executes an algorithm to completion over a snapshot of input (an array,
a graph or a dynamic-programming problem). Every observable moment becomes an
immutable Step: a deep copy of the container with per-item visual states, the
running comparison and swap counters, and a one-line description of the
operation. Playback is a separate concern: a Player publishes one step per
tick and can be paused, resumed, reset or re-timed without re-running the
algorithm.

# Usage

	eng := stepwise.New()

	steps, err := eng.Run(ctx, domain.AlgorithmBubble, domain.Input{
		Array: domain.NewArray(5, 3, 8, 1),
	})
	if err != nil {
		log.Fatal(err)
	}

	p := eng.NewPlayer(player.WithLifecycleHooks(domain.LifecycleHooks{
		OnStepPublished: func(e *domain.StepEvent) {
			fmt.Println(e.Step.Operation)
		},
	}))
	_ = p.Start(steps, domain.IntervalForSpeed(50))

# Adapters

Runs can be stored in memory, on disk or in Redis (pkg/adapters). The HTTP
adapter streams playback over Server-Sent Events, and the MCP adapter exposes
the catalog and runner as tools. Explanations of steps and complexity come
from pkg/explain over any ports.Completer.
*/
package stepwise
