// Package base64url converts binary data to and from the URL-safe base64
// alphabet with padding omitted.
//
// Encoding substitutes '+' with '-' and '/' with '_' and strips the trailing
// '=' padding, so the result can be placed in a URL path, query value or
// cookie without further escaping:
//
//	token := base64url.Encode(buf)
//	buf, err := base64url.Decode(token)
//
// Decoding is strict: characters outside the URL-safe alphabet, padding,
// impossible lengths and non-canonical trailing bits are rejected with a
// *DecodeError.
package base64url
