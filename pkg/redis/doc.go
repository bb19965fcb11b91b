// Package redis connects to the Redis server used by the queue transport and
// exposes a ping-based readiness check for the health endpoint.
package redis
