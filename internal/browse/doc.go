// Package browse implements the episode browsing state machine.
//
// The package is split into pure functions and one stateful type:
//   - [Filter] narrows episodes by a search term and a series code
//   - [Paginate] slices a result set into fixed-size pages
//   - [SeriesToFragment] / [FragmentToSeries] map the selected series to and from a URL fragment
//   - [Controller] owns the session state, runs the functions above on every input event
//     and hands the resulting [View] to a [Renderer]
//
// A Controller is not safe for concurrent use. Front ends deliver one event at a
// time and each handler runs to completion, render included, before it returns.
package browse
