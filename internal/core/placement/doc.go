// Package placement implements the signature-placement engine: the
// ordered placeholder store, the viewport controller that owns zoom and
// page navigation, the recipient assignment gate and the drag autoscroll
// controller.
//
// Everything here is synchronous and owned by a single caller (a TUI view,
// a CLI command or a service call). Only AutoScroller runs background work,
// and only between Start and Stop.
package placement
