// Package models defines the media index row shared by the media, summary and
// reconcile packages.
package models
