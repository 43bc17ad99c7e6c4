package config

import firebase "firebase.google.com/go/v4"

// FirebaseConfig builds the app config shared by firestore, storage and auth.
func (c Config) FirebaseConfig() *firebase.Config {
	return &firebase.Config{
		ProjectID:     c.FirebaseProjectID,
		StorageBucket: c.FirebaseStorageBucket,
	}
}
