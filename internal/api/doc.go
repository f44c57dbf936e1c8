// Package api provides a typed client for the studio backend's JSON API,
// covering channels, ideas, video jobs, genres, scraping, and settings.
package api
