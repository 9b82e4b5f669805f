/*
Package ports defines the driven ports (interfaces) of the menu engine.

These interfaces decouple menus from the platform and from where list data
lives.

# Key Interfaces

  - Responder: Delivers rendered messages and modals (e.g., through discordgo or an HTTP response).
  - Deferrer: Acknowledges an interaction before its response is ready.
  - EntrySource: Supplies list entries (e.g., from Redis, BoltDB or memory).
  - EntryStore: An EntrySource that can be seeded.
*/
package ports
