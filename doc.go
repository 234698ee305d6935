/*
Package main is an application package for the Findy mediator message core. It
processes the messages the clients of a store-and-forward DIDComm mediator send
to the mediator itself: the coordinate-mediation protocol (RFC 0211) and the
device registration of the push-notifications-fcm protocol (RFC 0734).

Encrypted envelopes, the HTTP transport and message routing belong to the
outer layers. The core receives an already decrypted message with the verified
authentication key of its sender, and returns the response message.

# About the build-in CLI

The compilation includes a command set to process single messages and to
maintain the mediator storage:

	findy-mediator handle      process a message read from a file or stdin
	findy-mediator keylist     print the recipient keys of an account
	findy-mediator device      show, set or clear the device info of an account
	findy-mediator notify      send an APNS push to the iOS device of an account
	findy-mediator backup      take a hot backup of the bolt storage
	findy-mediator version     print the version

All the flags can be given as environment variables with the FMED_ prefix or
in a configuration file given with --config.

# Packages

agent/aries and agent/didcomm decode and encode the wire messages with the
protocol registry, std packages declare the protocol messages,
protocol packages implement the handlers, and agent/storage includes the
persistence contract with its bolt and aries storage implementations.
*/
package main
