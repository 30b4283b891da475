// Package services holds the dispatch engine and the state it owns.
//
//   - Dispatcher: fans one request out to every supporting provider
//   - VersionService: the per-environment version bump state machine
//   - SettingsService: project settings over a ConfigStore
//   - WatchService: re-dispatch on filesystem changes
//
// Services never spawn processes or touch the filesystem directly;
// providers and stores do that behind driven ports.
package services
