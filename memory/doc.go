// Package memory holds the chat message model and the per-session
// conversation buffer replayed into every completion request.
//
// Memory model:
//   - Only text messages are kept (role + content).
//   - A Conversation grows by whole turns: the user message, then the
//     assistant reply. Nothing is evicted and nothing is written to disk.
//   - The system persona is never stored here; it is synthesized per call.
package memory
