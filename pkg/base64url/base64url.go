package base64url

import (
	"encoding/base64"
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/webkit/internal/errors"
)

var (
	// ErrInvalidLength is reported when the input length can never be
	// produced by Encode (length mod 4 == 1).
	ErrInvalidLength = stderrors.New("invalid length")

	// ErrInvalidCharacter is reported for bytes outside [A-Za-z0-9_-].
	ErrInvalidCharacter = stderrors.New("invalid character")

	// ErrNonCanonical is reported when the unused trailing bits are not zero.
	ErrNonCanonical = stderrors.New("non-canonical trailing bits")
)

var encoding = base64.RawURLEncoding.Strict()

// DecodeError describes malformed base64url input.
type DecodeError struct {
	// Input is the rejected text.
	Input string

	// Offset is the byte offset of the first offending character, or -1
	// when the failure is not tied to a position.
	Offset int

	// Err is one of ErrInvalidLength, ErrInvalidCharacter or ErrNonCanonical.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("base64url: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("base64url: %v", e.Err)
}

// Unwrap exposes both the cause sentinel and the registered E200 error, so
// errors.Is(err, ErrInvalidCharacter) and errors.StatusOf(err) both work.
func (e *DecodeError) Unwrap() []error {
	return []error{e.Err, errors.New("E200")}
}

// Encode returns the unpadded URL-safe base64 encoding of data.
// Empty input encodes to the empty string.
func Encode(data []byte) string {
	return encoding.EncodeToString(data)
}

// Decode reverses Encode. The empty string decodes to an empty, non-nil
// slice.
func Decode(text string) ([]byte, error) {
	if len(text)%4 == 1 {
		return nil, &DecodeError{Input: text, Offset: -1, Err: ErrInvalidLength}
	}
	for i := 0; i < len(text); i++ {
		if !isAlphabet(text[i]) {
			return nil, &DecodeError{Input: text, Offset: i, Err: ErrInvalidCharacter}
		}
	}

	out, err := encoding.DecodeString(text)
	if err != nil {
		// Every byte is in the alphabet and the length is possible, so the
		// only remaining failure is non-zero padding bits.
		var corrupt base64.CorruptInputError
		offset := -1
		if stderrors.As(err, &corrupt) {
			offset = int(corrupt)
		}
		return nil, &DecodeError{Input: text, Offset: offset, Err: ErrNonCanonical}
	}
	return out, nil
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
