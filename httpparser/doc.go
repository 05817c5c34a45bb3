// Package httpparser implements an incremental, streaming HTTP/1.1
// message parser and encoder.
//
// The package is transport-agnostic: the host feeds byte ranges into a
// RequestReceiver or ResponseReceiver and reacts to the Rx signal each
// call returns. Every parser is restartable at any byte boundary, never
// blocks, and bounds all work and allocation by the limits configured in
// Settings, so a malicious peer cannot force unbounded growth.
//
// Outgoing messages are built with TxRequest and TxResponse, which
// validate header fields against response-splitting injection, and with
// the AppendChunk helpers for chunked framing.
package httpparser
