/*
Package ports defines the driven ports (interfaces) for the stepwise engine.

These interfaces decouple the core logic from external implementations, allowing
the engine and player to work with real or virtual clocks, various storage
backends and any chat-completion provider.

# Key Interfaces

  - Scheduler: Runs a callback after a delay. The player uses it for ticks.
  - RunStore: Persists recorded step lists so they can be replayed later.
  - SettingsStore: Small key-value store for user settings such as the API key.
  - Completer: Sends a conversation to a language model and returns its reply.
*/
package ports
