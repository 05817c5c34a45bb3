package httpconn

// Transport is the byte pipe a connection writes to. Reads arrive
// through OnBytes on the connection: the host's event loop calls it
// whenever the socket delivers data. Send completion and errors are
// delivered out-of-band by the host.
type Transport interface {
	Send(data []byte) error
	Close() error
}
