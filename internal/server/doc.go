// Package server implements the HTTP surface of the text art service.
//
// # Routes
//
//   - POST /api/image-to-ascii: multipart upload in field "image" plus
//     optional conversion fields; returns the grid as text/plain, or as
//     image/png when format=png
//   - POST /api/text-to-ascii: JSON {"text": ..., "font": ...}; returns
//     banner art as text/plain
//   - GET /api/fonts, GET /api/palettes: JSON listings
//   - GET /api: endpoint catalog with parameter descriptions
//   - GET /healthz: liveness
//
// # Uploads
//
// An upload is staged only after the request has been validated, and the
// staged copy is released when the handler returns on every path. A request
// without an image never touches staging.
//
// # Error Handling
//
// Errors are classified with domain.KindOf:
//   - missing_input, invalid_input and invalid_font: 400 with the bare message
//   - decode_failure, degenerate_geometry and anything else: 500 with
//     "Error: <message>"
//
// All text responses use text/plain; charset=utf-8.
//
// # Middleware
//
// Every request gets an X-Request-ID (kept from the client when present),
// one structured access log line, panic recovery and CORS handling via
// github.com/rs/cors.
//
// # Usage
//
//	srv := server.New(opts, converter, renderer, stager, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
