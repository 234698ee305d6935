/*
Package protocol is package for the protocol handlers of the mediator. The
handlers implement the mediator side of the protocols: they turn decoded
inbound messages to response messages and use the persistence contract of
agent/storage/api. The protocol specific message implementations are located
in std package.

The handlers are stateless over their inputs, and they can be called
concurrently for different callers.
*/
package protocol
