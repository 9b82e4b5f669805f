/*
Package domain contains the core models of the menu engine.

It is pure and free of I/O. Platform adapters translate into and out of these
types; the ui package drives them.

# Key Entities

  - State: The resumable document of one menu render, its effects and its cache.
  - Condition: A static or state-derived flag such as "disabled".
  - Interaction: A normalized platform event that resumes a menu.
  - Message, Modal, Widget: The platform-neutral output of a render.
  - LifecycleHooks: Callbacks for observability.
*/
package domain
