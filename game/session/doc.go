// Package session stores knight board sessions.
//
// A Manager keeps sessions in memory keyed by a case-insensitive ID and can
// be backed by a SessionPersistence. FilePersistence writes one JSON file per
// session holding the board ID, the ordered terrain changes and the query log.
// Loading a session rebuilds its board from the named layout and replays the
// terrain changes, so a stored session always reproduces the board it left.
//
// Generated IDs are four hex characters.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "classic", configManager.GetDefault())
package session
