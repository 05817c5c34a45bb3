// Package httpconn ties the httpparser receivers and builders to an
// abstract transport, one connection per object. The host's event loop
// owns the I/O: it calls OnBytes when the socket delivers data, and the
// connection calls back into the handler on each structural event. No
// connection object may be entered concurrently.
package httpconn
