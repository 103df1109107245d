// Package restahead is the runtime used by clients generated with restaheadgen.
//
// A service is described as a Go interface whose methods carry directives:
//
//	//restahead:client
//	type Search interface {
//		// Delete removes the stored search.
//		//
//		//restahead:delete /search
//		//restahead:header accept Accept
//		Delete(ctx context.Context, accept []string) error
//	}
//
// The generator emits an implementation that builds a [Request], hands it to a
// [Client], and adapts the resulting [Future] to the declared return type. Calls
// that return a plain value block until the response arrives; calls that return a
// *Future[T] hand the composed future back without blocking.
//
// Failures surface as one of:
//   - *RequestFailedError, for status codes outside [200, 300);
//   - *ClientError, the unified error for everything else;
//   - the transport's *TransportError or the context error, unwrapped, when the
//     declaration lists them with //restahead:passthrough.
package restahead
