// Package converter provides [restahead.Converter] implementations.
//
// A converter is handed to a generated constructor and decodes the bodies of
// successful responses into the declared return types:
//
//	svc := api.NewHttpBinService(client, converter.Validating(converter.JSON()))
//
// [Negotiate] picks a converter by the Content-Type of each response.
package converter
