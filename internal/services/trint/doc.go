// Package trint uploads a single media file to the Trint upload endpoint.
//
// The client streams the file as the raw request body with Basic
// authentication and interprets the JSON reply. Server rejections come back
// as a failed Outcome; network failures come back as *TransportError so the
// caller can isolate them per file.
package trint
