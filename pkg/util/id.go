package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDLength is the length of user, project and task IDs
const IDLength = 16

// NewID returns a random ID for a new record
func NewID() (string, error) {
	return gonanoid.Generate(charset, IDLength)
}

// RequestID returns a short random ID used to correlate logs with a request
func RequestID() string {
	return gonanoid.MustGenerate(charset, 10)
}
