// Package llm talks to the Anthropic Messages API. It reads scanned work
// orders into numbered field text and asks for service categorizations, with
// rate limiting, retries, and response caching.
package llm
