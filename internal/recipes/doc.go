// Package recipes provides an HTTP client for the recipe catalog API.
//
// # Overview
//
// The client covers the read endpoints the catalog view needs, the JSON
// mutations used by the generic create/delete form, the multipart recipe
// editor calls, and the opaque auth and import helpers:
//
//   - GET /recipes, GET /recipes?category_id=N, GET /recipes/{id}
//   - GET /categories (each category carries its nested recipes)
//   - POST /categories, DELETE /categories/{id}, DELETE /recipes/{id}
//     (sent through Send with URLs built by the mutation presets)
//   - POST /recipes, PUT /recipes/{id} (multipart, optional "image" part)
//   - POST /login, POST /parse-recipe
//
// # Errors
//
// Non-2xx responses become *APIError. Its Message is the "error" field of
// the JSON envelope when the server sent one; callers turn it into inline
// text with UserMessage, which falls back to a generic message when the
// envelope is missing. Network and decode failures are wrapped with %w:
//
//   - "execute request: dial tcp: connection refused"
//   - "decode response: unexpected EOF"
//
// # Requests
//
// Every request carries Accept: application/json, a cookbook User-Agent and a
// fresh X-Request-ID that is also attached to the structured log entry for
// the call. Session cookies set by /login are kept in a public-suffix aware
// cookie jar, so later mutations are authenticated without further wiring.
//
// # Summaries
//
// List endpoints may return partial recipes. Title and Description are
// pointers and DisplayTitle/DisplayDescription substitute placeholders
// rather than failing on absent fields.
package recipes
