// Package watch keeps the requirements index current by rerunning an update
// whenever requirement files under the requirements directory change.
package watch
