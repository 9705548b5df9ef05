// Package runner assembles completion requests and performs one exchange
// with the provider.
//
// Invariant:
//   - the persona message is always at index 0 of the request and is never
//     written into conversation history.
//
// Request layout:
//
//	system(persona) -> history(user, assistant, ...) -> user(input)
package runner
