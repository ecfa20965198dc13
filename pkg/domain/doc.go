/*
Package domain contains the core domain models for the Stepwise engine.

It defines the containers that algorithms operate on, the immutable Step record
that every runner produces, and the playback state of the sequencer. This package
is kept pure and free of I/O, timers and persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Element: One value of a sorting array plus its visual state.
  - Graph: Nodes (with layout) and weighted edges, traversed as undirected.
  - Table: A 2-D grid of DPCell used by dynamic-programming fillers.
  - Step: A self-contained snapshot of a container plus running counters and a
    human-readable operation. Steps are never mutated after being recorded.
  - Run: A recorded step list for one algorithm invocation.
  - PlaybackState: The cursor/status/interval triple owned by a player.
*/
package domain
