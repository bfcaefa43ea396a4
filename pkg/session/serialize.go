package session

import (
	"encoding/json"
	"time"
)

// SerializableSession is the JSON-serializable representation of a session.
type SerializableSession struct {
	// ID is the unique session identifier.
	ID string `json:"id"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// LastActive is when the session was last active.
	LastActive time.Time `json:"last_active"`

	// Values contains Session.Get/Set values.
	Values map[string]json.RawMessage `json:"values,omitempty"`

	// Version is the serialization format version.
	Version int `json:"version"`
}

// CurrentSerializationVersion is the current version of the serialization format.
// Increment when making breaking changes to the format.
const CurrentSerializationVersion = 1

// Serialize converts a SerializableSession to bytes.
func Serialize(ss *SerializableSession) ([]byte, error) {
	ss.Version = CurrentSerializationVersion
	return json.Marshal(ss)
}

// Deserialize converts bytes back to a SerializableSession.
func Deserialize(data []byte) (*SerializableSession, error) {
	var ss SerializableSession
	if err := json.Unmarshal(data, &ss); err != nil {
		return nil, err
	}
	return &ss, nil
}
