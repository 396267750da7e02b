package models

// SyncSummary reports the outcome of one project sync run.
// Excluded is always Fetched - Imported.
type SyncSummary struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Excluded int `json:"excluded"`
}
