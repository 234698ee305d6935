/*
Package agent is a package for the mediator message core and its services. The
mediator package is the most important abstraction: it decodes the inbound
messages, delivers them to the protocol handlers and encodes the responses.

The agent package is empty itself. All the functionality is inside sub-packages.
Summary of the packages:

	apns       push notifications to the iOS devices of the accounts
	aries      decoding and encoding of the wire messages with the registry
	bus        event bus for the listeners of the account changes
	didcomm    message interfaces, type parsing and the protocol registry
	mediator   the facade: decode, handle, encode
	pltype     protocol and message type constants
	storage    persistence contract and its implementations
	utils      settings, version and logging helpers
*/
package agent
