// Package eventbus publishes pipeline progress so transports can stream run
// status without coupling to the podcast service.
package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Topics emitted over one podcast run.
const (
	TopicRunStarted      = "podcast:run:started"
	TopicScriptGenerated = "podcast:script:generated"
	TopicScriptParsed    = "podcast:script:parsed"
	TopicVoicesAssigned  = "podcast:voices:assigned"
	TopicSynthesisDone   = "podcast:synthesis:done"
	TopicRunCompleted    = "podcast:run:completed"
	TopicRunFailed       = "podcast:run:failed"
)

var (
	instance evbus.Bus
	once     sync.Once
)

// Get returns the process-wide bus.
func Get() evbus.Bus {
	once.Do(func() {
		instance = evbus.New()
	})
	return instance
}

// Publish emits an event on the shared bus.
func Publish(topic string, args ...interface{}) {
	Get().Publish(topic, args...)
}

// Subscribe registers a handler for a topic.
func Subscribe(topic string, fn interface{}) error {
	return Get().Subscribe(topic, fn)
}

// Unsubscribe removes a previously registered handler.
func Unsubscribe(topic string, fn interface{}) error {
	return Get().Unsubscribe(topic, fn)
}
