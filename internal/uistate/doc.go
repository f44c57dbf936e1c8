// Package uistate holds transient interface state shared across dashboard
// views: the sidebar toggle and the toast notification list.
package uistate
