// Package ui implements an interactive episode browser using bubbletea's Elm architecture.
//
// The [Model] is the render target of a [browse.Controller]: key presses call the controller's
// handlers and every frame it renders replaces the model's copy of the view.
//
// The screen is a single view:
//   - a search input, debounced so the catalog is only filtered once typing pauses
//   - the series selector, cycled with s and S
//   - the current page of episodes, drawn with the bubbles list delegate
//   - paginator dots and a "Showing N of M episodes" line
//
// When permalinks are on the model keeps an in-memory URL fragment. Pressing # prompts for a
// fragment, simulating navigation to a shared link, and y copies the permalink for the selected series.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
