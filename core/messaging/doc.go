// Package messaging wraps the NATS client used to receive blob deletion events
// published by other systems that manage the same bucket.
//
// Subscriptions join a queue group so each event is handled by one replica.
package messaging
