// Package ui implements the gallery terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] shows one catalog page at a time as a grid of [Card] values:
//  1. Loading : a full-screen placeholder while a catalog request is in flight
//  2. Grid : the cards, panned by the mouse through a spring-smoothed parallax offset
//  3. Group picker : a list overlay for switching catalog groups
//
// Changing the page or group cancels the in-flight request. Completions carry their request
// generation and only the latest one updates the grid (see gallery.Tracker). Animation frames
// are scheduled with tea.Tick only while the pan springs move or cards are still fading in.
//
// Keyboard navigation uses arrow/vim bindings (h/l, g, 1-5, tab, enter, w, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
