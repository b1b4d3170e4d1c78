package cache

// KeyPrefix namespaces every key this service writes, so one Redis database
// can be shared with other applications.
const KeyPrefix = "classics"

// SessionKey is the key a quiz session snapshot is stored under.
func SessionKey(sessionID string) string {
	return KeyPrefix + ":session:" + sessionID
}
