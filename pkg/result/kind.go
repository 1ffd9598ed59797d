// Package result provides the success/failure envelope returned by every
// operation that crosses the fetch boundary, together with the error
// taxonomy and the classifier that maps raw failures onto it.
package result

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	// KindNetwork represents transient transport failures (unreachable host,
	// timeout, connection reset).
	KindNetwork ErrorKind = "network"

	// KindServer represents 5xx responses.
	KindServer ErrorKind = "server"

	// KindNotFound represents 404 responses.
	KindNotFound ErrorKind = "not_found"

	// KindNoConnectivity means no usable network path existed, so no call was made.
	KindNoConnectivity ErrorKind = "no_connectivity"

	// KindUnknown covers everything else, including malformed or absent bodies.
	KindUnknown ErrorKind = "unknown"
)

// Kinds lists every ErrorKind in declaration order.
var Kinds = []ErrorKind{
	KindNetwork,
	KindServer,
	KindNotFound,
	KindNoConnectivity,
	KindUnknown,
}

// Valid reports whether k is one of the declared kinds.
func (k ErrorKind) Valid() bool {
	switch k {
	case KindNetwork, KindServer, KindNotFound, KindNoConnectivity, KindUnknown:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	return string(k)
}
